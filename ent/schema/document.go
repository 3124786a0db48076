package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document is a singleton value addressed by (partition, key).
// Writes are last-write-wins; there is no version column.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("partition").
			NotEmpty().
			Immutable(),
		field.String("doc_key").
			NotEmpty().
			Immutable(),
		field.Bytes("value").
			Comment("JSON or binary payload, opaque to the store"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("partition", "doc_key").Unique(),
	}
}
