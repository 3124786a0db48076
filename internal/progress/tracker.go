package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

// ConceptStatus is a learner's state on one concept of a chapter.
type ConceptStatus string

const (
	StatusInProgress ConceptStatus = "in-progress"
	StatusMastered   ConceptStatus = "mastered"
)

// ChapterProgress maps concept titles to their status.
type ChapterProgress map[string]ConceptStatus

// Mastered counts mastered concepts.
func (p ChapterProgress) Mastered() int {
	n := 0
	for _, s := range p {
		if s == StatusMastered {
			n++
		}
	}
	return n
}

// ChapterKey addresses one learner's progress on one chapter in one language.
type ChapterKey struct {
	StudentID int64
	Grade     string
	Subject   string
	Chapter   string
	Language  string
}

func (k ChapterKey) String() string {
	return store.Key("progress", strconv.FormatInt(k.StudentID, 10), k.Grade, k.Subject, k.Chapter, k.Language)
}

// Tracker records outcomes and derives the streak.
type Tracker struct {
	store *store.Store
	now   func() time.Time
	log   *logger.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now. The clock's location decides calendar days.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker returns a Tracker backed by s.
func NewTracker(s *store.Store, log *logger.Logger, opts ...Option) *Tracker {
	t := &Tracker{store: s, now: time.Now, log: log}
	for _, o := range opts {
		o(t)
	}
	return t
}

func streakKey(studentID int64) string { return fmt.Sprintf("streak-%d", studentID) }

func wellbeingKey(studentID int64) string { return fmt.Sprintf("wellbeing-assigned-%d", studentID) }

// RecordOutcome appends rec for the student and advances the streak in the
// same transaction. A zero CompletedAt is stamped with the clock.
func (t *Tracker) RecordOutcome(ctx context.Context, studentID int64, rec Record) (*Record, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	now := t.now()
	rec.StudentID = studentID
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = now
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	var streak Streak
	err = t.store.WithTx(ctx, func(tx *store.Store) error {
		id, err := tx.Collections().Append(ctx, store.PartitionPerformance, store.CollectionRecord{
			OwnerID:   studentID,
			Value:     value,
			CreatedAt: rec.CompletedAt,
		})
		if err != nil {
			return fmt.Errorf("append record: %w", err)
		}
		rec.ID = id

		prev, err := store.GetJSON[Streak](ctx, tx.Documents(), store.PartitionCache, streakKey(studentID))
		if err != nil {
			return fmt.Errorf("read streak: %w", err)
		}
		next, changed := AdvanceStreak(prev, now)
		streak = next
		if !changed {
			return nil
		}
		if err := store.PutJSON(ctx, tx.Documents(), store.PartitionCache, streakKey(studentID), next); err != nil {
			return fmt.Errorf("write streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.log.Debug("recorded outcome", "student", studentID, "subject", rec.Subject, "chapter", rec.Chapter,
		"kind", rec.Kind, "score", rec.Score, "streak", streak.Count)
	return &rec, nil
}

// Records returns the student's records in stored order.
func (t *Tracker) Records(ctx context.Context, studentID int64) ([]Record, error) {
	rows, err := t.store.Collections().Query(ctx, store.PartitionPerformance, store.Filter{OwnerID: studentID}, nil)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		var r Record
		if err := json.Unmarshal(row.Value, &r); err != nil {
			t.log.Warn("skip undecodable record", "id", row.ID, "error", err)
			continue
		}
		r.ID = row.ID
		out = append(out, r)
	}
	return out, nil
}

// Streak returns the streak as of today, or nil if the student has never
// recorded an outcome.
func (t *Tracker) Streak(ctx context.Context, studentID int64) (*Streak, error) {
	s, err := store.GetJSON[Streak](ctx, t.store.Documents(), store.PartitionCache, streakKey(studentID))
	if err != nil {
		return nil, fmt.Errorf("read streak: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	view := DecayStreak(*s, t.now())
	return &view, nil
}

// ChapterProgress returns the stored progress map; empty when none.
func (t *Tracker) ChapterProgress(ctx context.Context, key ChapterKey) (ChapterProgress, error) {
	p, err := store.GetJSON[ChapterProgress](ctx, t.store.Documents(), store.PartitionProgress, key.String())
	if err != nil {
		return nil, fmt.Errorf("read chapter progress: %w", err)
	}
	if p == nil {
		return ChapterProgress{}, nil
	}
	return *p, nil
}

// SetConceptStatus updates one concept and returns the whole map.
func (t *Tracker) SetConceptStatus(ctx context.Context, key ChapterKey, concept string, status ConceptStatus) (ChapterProgress, error) {
	if status != StatusInProgress && status != StatusMastered {
		return nil, fmt.Errorf("unknown concept status %q", status)
	}

	var out ChapterProgress
	err := t.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := store.GetJSON[ChapterProgress](ctx, tx.Documents(), store.PartitionProgress, key.String())
		if err != nil {
			return fmt.Errorf("read chapter progress: %w", err)
		}
		out = ChapterProgress{}
		if p != nil {
			out = *p
		}
		out[concept] = status
		return store.PutJSON(ctx, tx.Documents(), store.PartitionProgress, key.String(), out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WellbeingAssigned reports whether the wellbeing module is assigned.
func (t *Tracker) WellbeingAssigned(ctx context.Context, studentID int64) (bool, error) {
	v, err := store.GetJSON[bool](ctx, t.store.Documents(), store.PartitionCache, wellbeingKey(studentID))
	if err != nil {
		return false, fmt.Errorf("read wellbeing flag: %w", err)
	}
	return v != nil && *v, nil
}

// SetWellbeingAssigned stores the wellbeing flag.
func (t *Tracker) SetWellbeingAssigned(ctx context.Context, studentID int64, assigned bool) error {
	return store.PutJSON(ctx, t.store.Documents(), store.PartitionCache, wellbeingKey(studentID), assigned)
}
