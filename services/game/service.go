package game

import "sync"

// Service owns the live sessions, one per room, created lazily when a room is
// created and destroyed together with it. Cross-room operations only touch
// this map; everything inside a session goes through the session's own lock.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService() *Service {
	return &Service{sessions: make(map[string]*Session)}
}

func (s *Service) Create(roomId string, maxPlayers int) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := NewSession(roomId, maxPlayers)
	s.sessions[roomId] = session
	return session
}

func (s *Service) Get(roomId string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[roomId]
	return session, exists
}

func (s *Service) Delete(roomId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, roomId)
}
