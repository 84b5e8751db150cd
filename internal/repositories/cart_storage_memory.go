package repositories

import (
	"context"
	"sync"
)

// MemoryCartStorage is an in-memory implementation of CartStorage.
type MemoryCartStorage struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryCartStorage creates a new instance of MemoryCartStorage.
func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *MemoryCartStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryCartStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
