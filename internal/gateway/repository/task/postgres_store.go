package task

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

// PostgresStore persists tasks as JSONB payloads with a few promoted
// columns for filtering.
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

func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
  task_id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'submitted',
  payload JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Task, bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Task{}, false, err
	}
	key := strings.TrimSpace(id)
	if key == "" {
		return Task{}, false, fmt.Errorf("task id is required")
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM tasks WHERE task_id = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, fmt.Errorf("query task: %w", err)
	}
	var t Task
	if err := json.Unmarshal(payload, &t); err != nil {
		return Task{}, false, fmt.Errorf("decode task %s: %w", key, err)
	}
	return t, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, t Task) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	key := strings.TrimSpace(t.ID)
	if key == "" {
		return fmt.Errorf("task id is required")
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO tasks (task_id, user_id, status, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (task_id)
DO UPDATE SET user_id = EXCLUDED.user_id,
  status = EXCLUDED.status,
  payload = EXCLUDED.payload,
  updated_at = EXCLUDED.updated_at`,
		key, t.UserID, string(t.Status), payload, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert task %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Task, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	uid := strings.TrimSpace(userID)
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM tasks
WHERE ($1 = '' OR user_id = $1)
ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		var t Task
		if err := json.Unmarshal(payload, &t); err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
