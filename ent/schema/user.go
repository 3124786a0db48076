package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// User is a local account. Email is stored lowercased and is unique.
type User struct {
	ent.Schema
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty(),
		field.String("email").
			NotEmpty().
			Unique(),
		field.String("password_hash").
			Sensitive().
			Comment("bcrypt hash, never the plaintext"),
		field.String("grade"),
		field.String("avatar_url").
			Default(""),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}
