package repository

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Ratings are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[string]int
	closed  bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[string]int)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, false, ErrClosed
	}
	r, ok := s.ratings[key]
	return r, ok, nil
}

func (s *MemoryStore) Upsert(_ context.Context, key string, rating int) error {
	if err := validate(key, rating); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.ratings[key] = rating
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.ratings), nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
