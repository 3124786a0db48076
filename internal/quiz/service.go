package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
)

var (
	ErrInvalidInput = errors.New("invalid question set request")

	// ErrGenerationFailed wraps generator failures. Sets are never made up
	// locally.
	ErrGenerationFailed = errors.New("question set generation failed")

	ErrAnswerCount = errors.New("answer count does not match question count")
)

// MasteryScore is the practice score at which the drilled concept is marked
// mastered.
const MasteryScore = 75

// Recorder stores outcomes. *progress.Tracker implements it.
type Recorder interface {
	RecordOutcome(ctx context.Context, studentID int64, rec progress.Record) (*progress.Record, error)
	SetConceptStatus(ctx context.Context, key progress.ChapterKey, concept string, status progress.ConceptStatus) (progress.ChapterProgress, error)
}

// Outcome is the result of one question.
type Outcome struct {
	Picked  string
	Correct bool
}

// Result is a graded set.
type Result struct {
	Outcomes []Outcome
	Correct  int
	Total    int
	// Score is the percentage of correct answers, rounded.
	Score int

	// Record is the stored performance record; nil for diagnostic sets.
	Record *progress.Record
	// Mastered is set when a practice set marked its concept mastered.
	Mastered bool
}

// Grade scores answers against set without recording anything.
func Grade(set *Set, answers []string) (*Result, error) {
	if len(answers) != len(set.Questions) {
		return nil, fmt.Errorf("%w: %d answers for %d questions", ErrAnswerCount, len(answers), len(set.Questions))
	}
	res := &Result{Outcomes: make([]Outcome, len(answers)), Total: len(answers)}
	for i := range set.Questions {
		q := &set.Questions[i]
		picked, _ := Resolve(answers[i], q)
		ok := picked != "" && picked == q.Answer
		res.Outcomes[i] = Outcome{Picked: picked, Correct: ok}
		if ok {
			res.Correct++
		}
	}
	if res.Total > 0 {
		res.Score = int(math.Round(float64(res.Correct) / float64(res.Total) * 100))
	}
	return res, nil
}

// Service generates sets and records graded ones.
type Service struct {
	gen     Generator
	records Recorder
	log     *logger.Logger
}

// NewService creates a quiz service.
func NewService(gen Generator, records Recorder, log *logger.Logger) *Service {
	return &Service{gen: gen, records: records, log: log}
}

// Generate returns a new set. Input errors are returned as is; anything
// else is wrapped in ErrGenerationFailed.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Set, error) {
	set, err := s.gen.Generate(ctx, in)
	if errors.Is(err, ErrInvalidInput) {
		return nil, err
	}
	if err != nil {
		s.log.Warn("question set generation failed", "type", in.Type, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return set, nil
}

// Submit grades answers and records the score for studentID. A practice
// score of MasteryScore or more marks the drilled concept mastered.
// Diagnostic sets are graded only.
func (s *Service) Submit(ctx context.Context, studentID int64, set *Set, answers []string) (*Result, error) {
	res, err := Grade(set, answers)
	if err != nil {
		return nil, err
	}
	kind, ok := set.Type.RecordKind()
	if !ok {
		return res, nil
	}

	rec := progress.Record{Subject: set.Subject, Chapter: set.Chapter, Score: res.Score, Kind: kind}
	switch set.Type {
	case TypePractice:
		rec.Context = set.Concept
	case TypeIQ, TypeEQ:
		rec.Subject, rec.Chapter = CognitiveSubject, DailyExercise
		if set.Type == TypeEQ {
			rec.Subject = EmotionalSubject
		}
		if n := len(set.Questions); n > 0 {
			rec.Context = set.Questions[n-1].Skill
		}
	}
	res.Record, err = s.records.RecordOutcome(ctx, studentID, rec)
	if err != nil {
		return nil, fmt.Errorf("record %s score: %w", set.Type, err)
	}

	if set.Type == TypePractice && res.Score >= MasteryScore {
		key := progress.ChapterKey{StudentID: studentID, Grade: set.Grade, Subject: set.Subject, Chapter: set.Chapter, Language: set.Language}
		if _, err := s.records.SetConceptStatus(ctx, key, set.Concept, progress.StatusMastered); err != nil {
			return nil, fmt.Errorf("mark %q mastered: %w", set.Concept, err)
		}
		res.Mastered = true
	}
	s.log.Info("question set scored", "type", set.Type, "student", studentID, "score", res.Score)
	return res, nil
}

// Level is a diagnostic placement band.
type Level string

const (
	LevelHigh Level = "high"
	LevelMid  Level = "mid"
	LevelLow  Level = "low"
)

// Placement is where a diagnostic score suggests starting a subject.
type Placement struct {
	Level   Level
	Chapter string
}

// Place maps a diagnostic score onto the subject's chapters: 80 or more
// starts at the middle chapter, anything lower at the first.
func Place(score int, chapters []string) Placement {
	p := Placement{Level: LevelLow}
	switch {
	case score >= 80:
		p.Level = LevelHigh
	case score >= 50:
		p.Level = LevelMid
	}
	if len(chapters) == 0 {
		return p
	}
	p.Chapter = chapters[0]
	if p.Level == LevelHigh {
		p.Chapter = chapters[len(chapters)/2]
	}
	return p
}
