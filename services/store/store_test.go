package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Run("put get delete", func(t *testing.T) {
		s := NewMemoryStore()

		_, exists, err := s.Get("room:1")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, s.Put("room:1", []byte(`{"name":"mesa"}`)))
		value, exists, err := s.Get("room:1")
		require.NoError(t, err)
		require.True(t, exists)
		assert.Equal(t, []byte(`{"name":"mesa"}`), value)

		require.NoError(t, s.Delete("room:1"))
		_, exists, err = s.Get("room:1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list filters by prefix", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put("room:1", []byte("a")))
		require.NoError(t, s.Put("room:2", []byte("b")))
		require.NoError(t, s.Put("other:1", []byte("c")))

		values, err := s.List("room:")
		require.NoError(t, err)
		assert.Equal(t, 2, len(values))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put("room:1", []byte("abc")))

		value, _, err := s.Get("room:1")
		require.NoError(t, err)
		value[0] = 'x'

		again, _, err := s.Get("room:1")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again, "mutating a returned value must not corrupt the store")
	})
}

func TestFormatRoomKey(t *testing.T) {
	assert.Equal(t, "room:abc", FormatRoomKey("abc"))
}

// Needs a local Redis; skipped when one isn't reachable.
func TestRedisStore(t *testing.T) {
	s, err := NewRedisStore("localhost:6379", 15)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer s.Close()

	key := "cuatrico_test:room:1"
	defer s.Delete(key)

	require.NoError(t, s.Put(key, []byte(`{"name":"mesa"}`)))
	value, exists, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, []byte(`{"name":"mesa"}`), value)

	values, err := s.List("cuatrico_test:room:")
	require.NoError(t, err)
	assert.Equal(t, 1, len(values))

	require.NoError(t, s.Delete(key))
	_, exists, err = s.Get(key)
	require.NoError(t, err)
	assert.False(t, exists)
}
