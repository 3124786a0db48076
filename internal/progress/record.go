// Package progress records assessment outcomes, the daily learning streak
// and per-chapter concept progress.
package progress

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrInvalidRecord is returned for records that fail validation.
var ErrInvalidRecord = errors.New("invalid performance record")

// Kind is the kind of assessment a record came from.
type Kind string

const (
	KindQuiz     Kind = "quiz"
	KindExercise Kind = "exercise"
	KindIQ       Kind = "iq"
	KindEQ       Kind = "eq"
)

// Academic reports whether k counts toward subject mastery.
func (k Kind) Academic() bool { return k == KindQuiz || k == KindExercise }

// Cognitive reports whether k is an IQ or EQ exercise.
func (k Kind) Cognitive() bool { return k == KindIQ || k == KindEQ }

// Record is one completed assessment. Records are append-only.
type Record struct {
	ID          string    `json:"-"`
	StudentID   int64     `json:"studentId"`
	Subject     string    `json:"subject"`
	Chapter     string    `json:"chapter"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedDate"`
	Kind        Kind      `json:"type,omitempty"`
	Context     string    `json:"context,omitempty"`
}

// Validate normalizes r in place and checks its fields. An empty kind
// defaults to quiz.
func (r *Record) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Chapter = strings.TrimSpace(r.Chapter)
	if r.Kind == "" {
		r.Kind = KindQuiz
	}

	switch {
	case r.Score < 0 || r.Score > 100:
		return fmt.Errorf("%w: score %d outside 0..100", ErrInvalidRecord, r.Score)
	case !r.Kind.Academic() && !r.Kind.Cognitive():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, r.Kind)
	case r.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidRecord)
	case r.Kind.Academic() && r.Chapter == "":
		return fmt.Errorf("%w: chapter is required for %s records", ErrInvalidRecord, r.Kind)
	}
	return nil
}

// SortByRecent sorts records newest first. Records completed at the same
// instant keep their stored order.
func SortByRecent(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})
}
