// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// CollectionRecord is the predicate function for collectionrecord builders.
type CollectionRecord func(*sql.Selector)

// Document is the predicate function for document builders.
type Document func(*sql.Selector)

// LLMRequestEvent is the predicate function for llmrequestevent builders.
type LLMRequestEvent func(*sql.Selector)

// User is the predicate function for user builders.
type User func(*sql.Selector)
