package storage

import "sync"

// MemoryStore is a variable store that lives only for the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[int]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[int]int)}
}

func (s *MemoryStore) SetValue(id int, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[id] = value
	return nil
}

func (s *MemoryStore) Value(id int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[id], nil
}
