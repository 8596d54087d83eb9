package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Collection holds the schema definition for a moodboard.
type Collection struct {
	ent.Schema
}

// Fields of the Collection.
func (Collection) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("collection_id").
			Unique().
			Immutable(),
		field.String("conversation_id").
			Default(""),
		field.String("user_id").
			Default(""),
		field.JSON("items", []map[string]any{}).
			Default([]map[string]any{}),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the Collection.
func (Collection) Edges() []ent.Edge {
	return nil
}
