package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Deliverable holds the schema definition for an uploaded file reference.
// File bytes live in the object store; this row is the lookup record.
type Deliverable struct {
	ent.Schema
}

// Fields of the Deliverable.
func (Deliverable) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id"),
		field.String("name"),
		field.String("content_type").
			Default("application/octet-stream"),
		field.Int64("size_bytes").
			Default(0),
		field.Time("uploaded_at").
			Default(time.Now),
	}
}

// Edges of the Deliverable.
func (Deliverable) Edges() []ent.Edge {
	return nil
}
