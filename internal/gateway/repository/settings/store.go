// Package settings persists per-user account settings: notification
// preferences and payout details for freelancers.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Settings is one user's record. Zero value is a sensible default.
type Settings struct {
	UserID             string    `json:"userId"`
	DisplayName        string    `json:"displayName,omitempty"`
	EmailOnMessage     bool      `json:"emailOnMessage"`
	EmailOnDelivery    bool      `json:"emailOnDelivery"`
	PayoutMethod       string    `json:"payoutMethod,omitempty"` // e.g. "bank", "paypal"
	PayoutAccount      string    `json:"payoutAccount,omitempty"`
	CreditsPerCurrency float64   `json:"creditsPerCurrency,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Store keeps settings in memory, optionally mirrored to a JSON file when a
// path is configured.
type Store struct {
	path string

	loadOnce sync.Once
	mu       sync.RWMutex
	byUser   map[string]Settings
}

func New(path string) *Store {
	return &Store{
		path:   strings.TrimSpace(path),
		byUser: make(map[string]Settings),
	}
}

func (s *Store) ensureLoaded() {
	if s.path == "" {
		return
	}
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Settings
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			uid := strings.TrimSpace(row.UserID)
			if uid == "" {
				continue
			}
			s.byUser[uid] = row
		}
	})
}

func (s *Store) flush() {
	if s.path == "" {
		return
	}
	s.mu.RLock()
	rows := make([]Settings, 0, len(s.byUser))
	for _, row := range s.byUser {
		rows = append(rows, row)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

// Get returns the user's settings, or defaults when none are stored yet.
func (s *Store) Get(_ context.Context, userID string) (Settings, error) {
	if s == nil {
		return Settings{}, fmt.Errorf("store is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return Settings{}, fmt.Errorf("user id is required")
	}
	s.ensureLoaded()
	s.mu.RLock()
	row, ok := s.byUser[uid]
	s.mu.RUnlock()
	if !ok {
		return Settings{
			UserID:          uid,
			EmailOnMessage:  true,
			EmailOnDelivery: true,
		}, nil
	}
	return row, nil
}

// Save upserts the user's settings.
func (s *Store) Save(_ context.Context, row Settings) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	uid := strings.TrimSpace(row.UserID)
	if uid == "" {
		return fmt.Errorf("user id is required")
	}
	s.ensureLoaded()
	row.UserID = uid
	row.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.byUser[uid] = row
	s.mu.Unlock()
	s.flush()
	return nil
}
