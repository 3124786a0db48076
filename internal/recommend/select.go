// Package recommend picks a student's next learning action. The choice is a
// deterministic rule over the performance history; a text model only writes
// the explanation shown with it.
package recommend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/abhisek/alfanumrik/internal/curriculum"
	"github.com/abhisek/alfanumrik/internal/progress"
)

// ActionType is the kind of next step. The values are shared with stored
// and displayed data.
type ActionType string

const (
	ActionReview     ActionType = "ACADEMIC_REVIEW"
	ActionPractice   ActionType = "ACADEMIC_PRACTICE"
	ActionAdvance    ActionType = "ACADEMIC_NEW"
	ActionIQExercise ActionType = "IQ_EXERCISE"
	ActionEQExercise ActionType = "EQ_EXERCISE"
)

// Academic reports whether a targets a chapter.
func (a ActionType) Academic() bool {
	return a == ActionReview || a == ActionPractice || a == ActionAdvance
}

// Score thresholds, in percent.
const (
	WeakScore   = 70
	ReviewScore = 60
)

// Tier is the priority rule that produced a decision.
type Tier int

const (
	TierWeakness Tier = 1
	TierAdvance  Tier = 2
	TierHolistic Tier = 3
)

// ConfidenceBand returns the confidence range expected for decisions of
// tier t.
func (t Tier) ConfidenceBand() (lo, hi float64) {
	switch t {
	case TierWeakness:
		return 0.9, 1.0
	case TierAdvance:
		return 0.8, 0.9
	default:
		return 0.7, 0.8
	}
}

// Clamp forces c into the tier's band.
func (t Tier) Clamp(c float64) float64 {
	lo, hi := t.ConfidenceBand()
	return min(max(c, lo), hi)
}

// Decision is the outcome of Select. Subject and Chapter are set for
// academic actions; Score is the triggering score for tier 1 and the
// subject average for tier 2.
type Decision struct {
	Action  ActionType
	Tier    Tier
	Subject string
	Chapter string
	Score   float64
}

// Select applies the priority rules to history, first match wins:
//
//  1. The lowest academic score under 70 is reviewed (under 60) or
//     practiced. Ties go to the most recent record, then to the first stored.
//  2. Otherwise the subject with the best average advances to its first
//     chapter, in catalog order, with no academic record. Average ties go to
//     the alphabetically first subject.
//  3. Otherwise a cognitive exercise, alternating with the last one taken.
//
// grade may be nil, in which case rule 2 never matches.
func Select(history []progress.Record, grade *curriculum.Grade) Decision {
	if d, ok := weakest(history); ok {
		return d
	}
	if d, ok := advance(history, grade); ok {
		return d
	}
	return cognitive(history)
}

func weakest(history []progress.Record) (Decision, bool) {
	best := -1
	for i, r := range history {
		if !r.Kind.Academic() || r.Score >= WeakScore {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := history[best]
		if r.Score < b.Score || (r.Score == b.Score && r.CompletedAt.After(b.CompletedAt)) {
			best = i
		}
	}
	if best < 0 {
		return Decision{}, false
	}

	r := history[best]
	action := ActionPractice
	if r.Score < ReviewScore {
		action = ActionReview
	}
	return Decision{
		Action:  action,
		Tier:    TierWeakness,
		Subject: r.Subject,
		Chapter: r.Chapter,
		Score:   float64(r.Score),
	}, true
}

type subjectStats struct {
	name  string
	total int
	n     int
	seen  map[string]bool
}

func (s *subjectStats) average() float64 { return float64(s.total) / float64(s.n) }

func advance(history []progress.Record, grade *curriculum.Grade) (Decision, bool) {
	bySubject := map[string]*subjectStats{}
	for _, r := range history {
		if !r.Kind.Academic() {
			continue
		}
		key := strings.ToLower(r.Subject)
		st, ok := bySubject[key]
		if !ok {
			st = &subjectStats{name: r.Subject, seen: map[string]bool{}}
			bySubject[key] = st
		}
		st.total += r.Score
		st.n++
		st.seen[normalize(r.Chapter)] = true
	}
	if len(bySubject) == 0 || grade == nil {
		return Decision{}, false
	}

	stats := make([]*subjectStats, 0, len(bySubject))
	for _, st := range bySubject {
		stats = append(stats, st)
	}
	slices.SortFunc(stats, func(a, b *subjectStats) int {
		if c := cmp.Compare(b.average(), a.average()); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	top := stats[0]
	subject, ok := grade.Subject(top.name)
	if !ok {
		return Decision{}, false
	}
	for _, title := range subject.ChapterTitles() {
		if !top.seen[normalize(title)] {
			return Decision{
				Action:  ActionAdvance,
				Tier:    TierAdvance,
				Subject: subject.Name,
				Chapter: title,
				Score:   top.average(),
			}, true
		}
	}
	return Decision{}, false
}

func cognitive(history []progress.Record) Decision {
	last := -1
	for i, r := range history {
		if !r.Kind.Cognitive() {
			continue
		}
		if last < 0 || !r.CompletedAt.Before(history[last].CompletedAt) {
			last = i
		}
	}
	action := ActionIQExercise
	if last >= 0 && history[last].Kind == progress.KindIQ {
		action = ActionEQExercise
	}
	return Decision{Action: action, Tier: TierHolistic}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
