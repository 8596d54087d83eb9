package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Task)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Task, bool, error) {
	if s == nil {
		return Task{}, false, fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return Task{}, false, fmt.Errorf("task id is required")
	}
	s.mu.RLock()
	t, ok := s.byID[key]
	s.mu.RUnlock()
	if !ok {
		return Task{}, false, nil
	}
	return t.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, t Task) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	key := strings.TrimSpace(t.ID)
	if key == "" {
		return fmt.Errorf("task id is required")
	}
	s.mu.Lock()
	s.byID[key] = t.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Task, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	uid := strings.TrimSpace(userID)
	s.mu.RLock()
	out := make([]Task, 0, len(s.byID))
	for _, t := range s.byID {
		if uid != "" && t.UserID != uid {
			continue
		}
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
