// Package memory implements an in-process credential store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Store keeps credentials in a map. Nothing survives the process.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *Store) Close() error { return nil }
