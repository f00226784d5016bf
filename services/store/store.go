package store

import "sync"

// Store is the keyed document store behind the room registry. Values are JSON
// blobs; the registry does the (un)marshaling. Keeping this behind an
// interface is what lets a distributed backend replace the in-process map
// without touching game logic.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// List returns every value whose key starts with prefix.
	List(prefix string) ([][]byte, error)
}

// MemoryStore is the default process-local implementation. The authoritative
// session state is single-writer and in-process anyway, so room metadata
// normally lives here too.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) List(prefix string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var values [][]byte
	for key, value := range m.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			values = append(values, append([]byte(nil), value...))
		}
	}
	return values, nil
}
