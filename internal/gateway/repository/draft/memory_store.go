package draft

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps drafts in a map. It is thread-safe and used for tests
// and DSN-less deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Draft)}
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (Draft, bool, error) {
	if s == nil {
		return Draft{}, false, fmt.Errorf("store is nil")
	}
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return Draft{}, false, fmt.Errorf("conversation_id is required")
	}
	s.mu.RLock()
	d, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return Draft{}, false, nil
	}
	return d.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, d Draft) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id := strings.TrimSpace(d.ConversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	s.mu.Lock()
	s.byID[id] = d.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Draft, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	uid := strings.TrimSpace(userID)
	s.mu.RLock()
	out := make([]Draft, 0, len(s.byID))
	for _, d := range s.byID {
		if uid != "" && d.UserID != uid {
			continue
		}
		out = append(out, d.Clone())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
