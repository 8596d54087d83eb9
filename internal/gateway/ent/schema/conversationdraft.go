package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ConversationDraft holds the schema definition for an in-progress
// conversation: messages, live brief and stage state as one JSON payload.
type ConversationDraft struct {
	ent.Schema
}

// Fields of the ConversationDraft.
func (ConversationDraft) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("conversation_id").
			Unique().
			Immutable(),
		field.String("user_id").
			Default(""),
		field.JSON("payload", map[string]any{}).
			Default(map[string]any{}),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the ConversationDraft.
func (ConversationDraft) Edges() []ent.Edge {
	return nil
}
