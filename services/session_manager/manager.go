package session_manager

import (
	"log"
	"sync"
	"time"
)

// Binding ties a transport connection to its (room, player) identity.
type Binding struct {
	ConnectionId string
	RoomId       string
	PlayerId     string
	LastActivity time.Time
}

// Manager owns the connection bindings and the per-room inactivity timers. A
// disconnect mid-game does NOT end the session: the binding goes away but the
// player stays seated, and the room lives until its inactivity timer expires
// with no qualifying action (game start, accepted play/draw, completed bot
// move).
type Manager struct {
	mu           sync.Mutex
	byConnection map[string]*Binding
	roomTimers   map[string]*time.Timer
	timeout      time.Duration
	onExpire     func(roomId string)
}

func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		byConnection: make(map[string]*Binding),
		roomTimers:   make(map[string]*time.Timer),
		timeout:      timeout,
	}
}

// SetExpireFunc wires the teardown callback. Set once at composition time,
// before any room exists. The callback itself must re-check room existence:
// teardown can race with a normal deletion and a missing room is a no-op.
func (m *Manager) SetExpireFunc(fn func(roomId string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

// Bind associates a connection with its room and player. Rebinding the same
// connection replaces the previous association.
func (m *Manager) Bind(connectionId, roomId, playerId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byConnection[connectionId] = &Binding{
		ConnectionId: connectionId,
		RoomId:       roomId,
		PlayerId:     playerId,
		LastActivity: time.Now(),
	}
}

// Unbind removes a connection's binding, returning it for the disconnect
// handler to act on.
func (m *Manager) Unbind(connectionId string) (*Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	binding, exists := m.byConnection[connectionId]
	if exists {
		delete(m.byConnection, connectionId)
	}
	return binding, exists
}

// BindingFor resolves the (room, player) context of a connection.
func (m *Manager) BindingFor(connectionId string) (*Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	binding, exists := m.byConnection[connectionId]
	if !exists {
		return nil, false
	}
	b := *binding
	return &b, true
}

// Touch refreshes a connection's activity stamp and resets the room's
// inactivity timer.
func (m *Manager) Touch(connectionId, roomId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if binding, exists := m.byConnection[connectionId]; exists {
		binding.LastActivity = time.Now()
	}
	m.resetRoomTimerLocked(roomId)
}

// TouchRoom resets only the room timer (bot moves have no connection).
func (m *Manager) TouchRoom(roomId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetRoomTimerLocked(roomId)
}

func (m *Manager) resetRoomTimerLocked(roomId string) {
	if timer, exists := m.roomTimers[roomId]; exists {
		timer.Stop()
	}
	m.roomTimers[roomId] = time.AfterFunc(m.timeout, func() {
		m.expire(roomId)
	})
}

func (m *Manager) expire(roomId string) {
	m.mu.Lock()
	delete(m.roomTimers, roomId)
	fn := m.onExpire
	m.mu.Unlock()

	log.Printf("[INACTIVITY] Room %s hit the inactivity timeout", roomId)
	if fn != nil {
		fn(roomId)
	}
}

// CancelRoom stops the room's inactivity timer and drops every binding into
// the room. Called on teardown; a timer that already fired finds the room
// gone and no-ops.
func (m *Manager) CancelRoom(roomId string) []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, exists := m.roomTimers[roomId]; exists {
		timer.Stop()
		delete(m.roomTimers, roomId)
	}

	var dropped []Binding
	for id, binding := range m.byConnection {
		if binding.RoomId == roomId {
			dropped = append(dropped, *binding)
			delete(m.byConnection, id)
		}
	}
	return dropped
}
