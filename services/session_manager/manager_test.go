package session_manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	t.Run("bind and resolve", func(t *testing.T) {
		m := NewManager(time.Minute)
		m.Bind("conn-1", "room-1", "ana")

		binding, exists := m.BindingFor("conn-1")
		require.True(t, exists)
		assert.Equal(t, "room-1", binding.RoomId)
		assert.Equal(t, "ana", binding.PlayerId)
	})

	t.Run("rebinding replaces the previous association", func(t *testing.T) {
		m := NewManager(time.Minute)
		m.Bind("conn-1", "room-1", "ana")
		m.Bind("conn-1", "room-2", "ana")

		binding, exists := m.BindingFor("conn-1")
		require.True(t, exists)
		assert.Equal(t, "room-2", binding.RoomId)
	})

	t.Run("unbind returns the dropped binding", func(t *testing.T) {
		m := NewManager(time.Minute)
		m.Bind("conn-1", "room-1", "ana")

		binding, existed := m.Unbind("conn-1")
		require.True(t, existed)
		assert.Equal(t, "ana", binding.PlayerId)

		_, exists := m.BindingFor("conn-1")
		assert.False(t, exists)
	})
}

func TestInactivityExpiry(t *testing.T) {
	t.Run("expires after the timeout with no activity", func(t *testing.T) {
		m := NewManager(30 * time.Millisecond)
		expired := make(chan string, 1)
		m.SetExpireFunc(func(roomId string) { expired <- roomId })

		m.Bind("conn-1", "room-1", "ana")
		m.Touch("conn-1", "room-1")

		select {
		case roomId := <-expired:
			assert.Equal(t, "room-1", roomId)
		case <-time.After(time.Second):
			t.Fatal("inactivity expiry never fired")
		}
	})

	t.Run("touch resets the timer", func(t *testing.T) {
		m := NewManager(60 * time.Millisecond)
		expired := make(chan string, 1)
		m.SetExpireFunc(func(roomId string) { expired <- roomId })

		m.TouchRoom("room-1")
		time.Sleep(40 * time.Millisecond)
		m.TouchRoom("room-1")
		time.Sleep(40 * time.Millisecond)

		select {
		case <-expired:
			t.Fatal("timer fired despite recent activity")
		default:
		}

		select {
		case roomId := <-expired:
			assert.Equal(t, "room-1", roomId)
		case <-time.After(time.Second):
			t.Fatal("inactivity expiry never fired after activity stopped")
		}
	})

	t.Run("cancel stops the timer and drops the room's bindings", func(t *testing.T) {
		m := NewManager(30 * time.Millisecond)
		expired := make(chan string, 1)
		m.SetExpireFunc(func(roomId string) { expired <- roomId })

		m.Bind("conn-1", "room-1", "ana")
		m.Bind("conn-2", "room-1", "bea")
		m.Bind("conn-3", "room-2", "carlos")
		m.TouchRoom("room-1")

		dropped := m.CancelRoom("room-1")
		assert.Equal(t, 2, len(dropped))

		_, exists := m.BindingFor("conn-3")
		assert.True(t, exists, "other rooms' bindings survive")

		time.Sleep(60 * time.Millisecond)
		select {
		case <-expired:
			t.Fatal("cancelled timer still fired")
		default:
		}
	})
}
