package socketio_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectArg(t *testing.T) {
	payload, ok := ObjectArg([]interface{}{map[string]interface{}{"room_id": "r1"}})
	require.True(t, ok)
	assert.Equal(t, "r1", payload["room_id"])

	_, ok = ObjectArg(nil)
	assert.False(t, ok)

	_, ok = ObjectArg([]interface{}{"not an object"})
	assert.False(t, ok)
}

func TestFieldReaders(t *testing.T) {
	payload := map[string]interface{}{
		"room_name":   "mesa",
		"max_players": float64(4), // JSON numbers arrive as float64
		"card_id":     17,
		"bad":         []string{"x"},
	}

	assert.Equal(t, "mesa", StringField(payload, "room_name"))
	assert.Equal(t, "", StringField(payload, "missing"))
	assert.Equal(t, "", StringField(payload, "bad"))

	n, ok := IntField(payload, "max_players")
	require.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = IntField(payload, "card_id")
	require.True(t, ok)
	assert.Equal(t, 17, n)

	_, ok = IntField(payload, "missing")
	assert.False(t, ok)
}
