package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the local database could not be opened or
	// migrated. Callers are expected to degrade to an in-memory experience.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned when a document or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a unique index
	// (user email, collection record id).
	ErrDuplicate = errors.New("duplicate")

	// ErrWrongPartition is returned when a document operation targets a
	// collection partition or vice versa.
	ErrWrongPartition = errors.New("wrong partition kind")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
