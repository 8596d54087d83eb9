// Package collection persists moodboards: the style references, colors and
// uploads a client gathers while shaping a brief.
package collection

import (
	"context"
	"encoding/json"
	"time"
)

// ItemKind says what a moodboard entry points at.
type ItemKind string

const (
	ItemStyle  ItemKind = "style"  // catalogued deliverable style
	ItemUpload ItemKind = "upload" // client-provided reference image
	ItemColor  ItemKind = "color"  // a palette swatch
)

// Item is one moodboard entry.
type Item struct {
	ID      string    `json:"id"`
	Kind    ItemKind  `json:"kind"`
	StyleID string    `json:"styleId,omitempty"`
	URL     string    `json:"url,omitempty"`
	Color   string    `json:"color,omitempty"`
	Note    string    `json:"note,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

// Collection is a moodboard tied to one conversation.
type Collection struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	Items          []Item    `json:"items"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SelectedStyleIDs lists the catalogued styles on the board, in insertion
// order, deduplicated.
func (c Collection) SelectedStyleIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	var out []string
	for _, it := range c.Items {
		if it.Kind != ItemStyle || it.StyleID == "" {
			continue
		}
		if _, dup := seen[it.StyleID]; dup {
			continue
		}
		seen[it.StyleID] = struct{}{}
		out = append(out, it.StyleID)
	}
	return out
}

// Colors lists palette swatches on the board, in insertion order.
func (c Collection) Colors() []string {
	var out []string
	for _, it := range c.Items {
		if it.Kind == ItemColor && it.Color != "" {
			out = append(out, it.Color)
		}
	}
	return out
}

func (c Collection) Clone() Collection {
	b, err := json.Marshal(c)
	if err != nil {
		return c
	}
	var out Collection
	if err := json.Unmarshal(b, &out); err != nil {
		return c
	}
	return out
}

// Store is the moodboard persistence boundary.
type Store interface {
	Get(ctx context.Context, id string) (Collection, bool, error)
	Save(ctx context.Context, c Collection) error
	Delete(ctx context.Context, id string) error
}
