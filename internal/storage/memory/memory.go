// Package memory provides an in-process implementation of storage.Backend.
// Values are lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/amigo/internal/storage"
)

var _ storage.Backend = (*Store)(nil)

// Store keeps values in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Keys returns the number of stored keys.
func (s *Store) Keys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
