// Package task persists submitted tasks: the confirmed proposal, the frozen
// designer brief, and everything that happens after handoff (revisions,
// deliverables, payout state).
package task

import (
	"context"
	"encoding/json"
	"time"

	"atelier/internal/brief"
)

// Status is the task lifecycle state.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusInRevision Status = "in_revision"
	StatusApproved   Status = "approved"
	StatusPaidOut    Status = "paid_out"
)

// Revision is one requested change round.
type Revision struct {
	Round       int       `json:"round"`
	Notes       string    `json:"notes"`
	RequestedAt time.Time `json:"requestedAt"`
}

// DeliverableRef points at an uploaded file in the deliverable store.
type DeliverableRef struct {
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// MaxRevisionRounds bounds how many change rounds a client can request
// before the task has to be re-scoped.
const MaxRevisionRounds = 3

// Task is a confirmed, priced design request owned by a freelancer.
type Task struct {
	ID             string              `json:"id"`
	ConversationID string              `json:"conversationId"`
	UserID         string              `json:"userId"`
	FreelancerID   string              `json:"freelancerId,omitempty"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	Status         Status              `json:"status"`
	Credits        int                 `json:"credits"`
	EstimatedHours int                 `json:"estimatedHours"`
	DeliveryDays   int                 `json:"deliveryDays"`
	DueDate        string              `json:"dueDate"`
	Brief          brief.DesignerBrief `json:"brief"`
	Revisions      []Revision          `json:"revisions"`
	Deliverables   []DeliverableRef    `json:"deliverables"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Clone deep-copies via JSON, mirroring the draft store.
func (t Task) Clone() Task {
	b, err := json.Marshal(t)
	if err != nil {
		return t
	}
	var out Task
	if err := json.Unmarshal(b, &out); err != nil {
		return t
	}
	return out
}

// Store is the task persistence boundary.
type Store interface {
	Get(ctx context.Context, id string) (Task, bool, error)
	Save(ctx context.Context, t Task) error
	ListByUser(ctx context.Context, userID string) ([]Task, error)
}
