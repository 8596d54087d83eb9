package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore keeps drafts as one JSON document on disk, loaded once and
// rewritten whole on every save. Fine for local single-process use; the
// Postgres store is for anything real.
type FileStore struct {
	path string

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Draft
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: strings.TrimSpace(path),
		byID: make(map[string]Draft),
	}
}

func (s *FileStore) ensureLoaded() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Draft
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.ConversationID)
			if id == "" {
				continue
			}
			s.byID[id] = row
		}
	})
}

func (s *FileStore) flush() {
	s.mu.RLock()
	rows := make([]Draft, 0, len(s.byID))
	for _, d := range s.byID {
		rows = append(rows, d)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ConversationID < rows[j].ConversationID
	})

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Get(_ context.Context, conversationID string) (Draft, bool, error) {
	if s == nil {
		return Draft{}, false, fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
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

func (s *FileStore) Save(_ context.Context, d Draft) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
	id := strings.TrimSpace(d.ConversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	s.mu.Lock()
	s.byID[id] = d.Clone()
	s.mu.Unlock()
	s.flush()
	return nil
}

func (s *FileStore) Delete(_ context.Context, conversationID string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	s.flush()
	return nil
}

func (s *FileStore) ListByUser(_ context.Context, userID string) ([]Draft, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
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
