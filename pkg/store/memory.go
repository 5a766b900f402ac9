package store

import (
	"context"
	"sync"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]squiggle.Seed
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]squiggle.Seed)}
}

func (s *MemoryStore) Get(ctx context.Context, tokenID string) (squiggle.Seed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seed, ok := s.tokens[tokenID]
	if !ok {
		return squiggle.Seed{}, notFound(tokenID)
	}
	return seed, nil
}

func (s *MemoryStore) Put(ctx context.Context, tokenID string, seed squiggle.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.tokens[tokenID]; ok {
		if existing != seed {
			return conflict(tokenID)
		}
		return nil
	}
	s.tokens[tokenID] = seed
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
