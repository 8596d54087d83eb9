package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists drafts as JSONB rows keyed by conversation id.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing connection, used when the app
// shares one pool across stores.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS conversation_drafts (
  conversation_id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  payload JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_conversation_drafts_user_id ON conversation_drafts (user_id);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Get(ctx context.Context, conversationID string) (Draft, bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Draft{}, false, err
	}
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return Draft{}, false, fmt.Errorf("conversation_id is required")
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM conversation_drafts WHERE conversation_id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("query draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return Draft{}, false, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return d, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, d Draft) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(d.ConversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO conversation_drafts (conversation_id, user_id, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (conversation_id)
DO UPDATE SET user_id = EXCLUDED.user_id,
  payload = EXCLUDED.payload,
  updated_at = EXCLUDED.updated_at`,
		id, d.UserID, payload, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert draft %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, conversationID string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return fmt.Errorf("conversation_id is required")
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_drafts WHERE conversation_id = $1`, id); err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Draft, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	uid := strings.TrimSpace(userID)
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM conversation_drafts
WHERE ($1 = '' OR user_id = $1)
ORDER BY updated_at DESC`, uid)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		var d Draft
		if err := json.Unmarshal(payload, &d); err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
