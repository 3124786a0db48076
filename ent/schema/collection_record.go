package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CollectionRecord is one entry of an append-mostly collection partition
// (performance, questions, feedback). owner_id is the student the record
// belongs to and is the only secondary index on collections.
type CollectionRecord struct {
	ent.Schema
}

func (CollectionRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("partition").
			NotEmpty().
			Immutable(),
		field.String("record_id").
			NotEmpty().
			Immutable(),
		field.Int64("owner_id").
			Default(0).
			Immutable(),
		field.Bytes("value"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (CollectionRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("partition", "record_id").Unique(),
		index.Fields("partition", "owner_id"),
	}
}
