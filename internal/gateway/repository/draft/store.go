// Package draft persists in-progress conversation drafts: the message
// history, the live brief being built from it, and the stage high-water
// mark. A draft exists from the first message until task submission.
package draft

import (
	"context"
	"encoding/json"
	"time"

	"atelier/internal/brief"
	"atelier/internal/chatflow"
)

// Message is one stored conversation turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft is the unit of persistence, keyed by conversation id.
type Draft struct {
	ConversationID  string           `json:"conversationId"`
	UserID          string           `json:"userId"`
	Messages        []Message        `json:"messages"`
	Brief           *brief.LiveBrief `json:"brief"`
	CompletedStages []chatflow.Stage `json:"completedStages"`
	CollectionID    string           `json:"collectionId,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Clone deep-copies a draft via its JSON form, so callers can hand copies
// across goroutines without sharing the brief.
func (d Draft) Clone() Draft {
	b, err := json.Marshal(d)
	if err != nil {
		return d
	}
	var out Draft
	if err := json.Unmarshal(b, &out); err != nil {
		return d
	}
	return out
}

// Store is the draft persistence boundary. Implementations: in-memory,
// JSON file, Postgres; a cached decorator fronts whichever is active.
type Store interface {
	Get(ctx context.Context, conversationID string) (Draft, bool, error)
	Save(ctx context.Context, d Draft) error
	Delete(ctx context.Context, conversationID string) error
	ListByUser(ctx context.Context, userID string) ([]Draft, error)
}
