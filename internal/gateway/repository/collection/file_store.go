package collection

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

// FileStore mirrors the draft file store: one JSON document, load-once,
// rewrite-on-save.
type FileStore struct {
	path string

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Collection
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: strings.TrimSpace(path),
		byID: make(map[string]Collection),
	}
}

func (s *FileStore) ensureLoaded() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Collection
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			s.byID[id] = row
		}
	})
}

func (s *FileStore) flush() {
	s.mu.RLock()
	rows := make([]Collection, 0, len(s.byID))
	for _, c := range s.byID {
		rows = append(rows, c)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Get(_ context.Context, id string) (Collection, bool, error) {
	if s == nil {
		return Collection{}, false, fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
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

func (s *FileStore) Save(_ context.Context, c Collection) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
	key := strings.TrimSpace(c.ID)
	if key == "" {
		return fmt.Errorf("collection id is required")
	}
	s.mu.Lock()
	s.byID[key] = c.Clone()
	s.mu.Unlock()
	s.flush()
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.ensureLoaded()
	key := strings.TrimSpace(id)
	if key == "" {
		return fmt.Errorf("collection id is required")
	}
	s.mu.Lock()
	delete(s.byID, key)
	s.mu.Unlock()
	s.flush()
	return nil
}
