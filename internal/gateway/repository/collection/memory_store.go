package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Collection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Collection)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Collection, bool, error) {
	if s == nil {
		return Collection{}, false, fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return Collection{}, false, fmt.Errorf("collection id is required")
	}
	s.mu.RLock()
	c, ok := s.byID[key]
	s.mu.RUnlock()
	if !ok {
		return Collection{}, false, nil
	}
	return c.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, c Collection) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(c.ID)
	if key == "" {
		return fmt.Errorf("collection id is required")
	}
	s.mu.Lock()
	s.byID[key] = c.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return fmt.Errorf("collection id is required")
	}
	s.mu.Lock()
	delete(s.byID, key)
	s.mu.Unlock()
	return nil
}
