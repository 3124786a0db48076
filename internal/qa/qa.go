// Package qa stores questions students ask about a concept, answers them
// with the mentor model and prepares notes for their teacher.
package qa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

var (
	ErrInvalidQuestion = errors.New("invalid question")
	ErrNotFound        = errors.New("question not found")

	// ErrGenerationFailed wraps model failures. Answers and analyses are
	// never made up locally.
	ErrGenerationFailed = errors.New("question generation failed")
)

// Question is a student's question with the replies attached to it.
type Question struct {
	ID          string    `json:"id"`
	StudentID   int64     `json:"studentId"`
	StudentName string    `json:"studentName"`
	Grade       string    `json:"grade"`
	Subject     string    `json:"subject"`
	Chapter     string    `json:"chapter"`
	Concept     string    `json:"concept"`
	Text        string    `json:"questionText"`
	AskedAt     time.Time `json:"timestamp"`
	Answer      *Answer   `json:"fittoResponse,omitempty"`
	Analysis    *Analysis `json:"analysis,omitempty"`
}

// Answer is the mentor's reply to the student.
type Answer struct {
	Relevant bool   `json:"isRelevant"`
	Text     string `json:"responseText"`
}

// Analysis is private guidance for the teacher.
type Analysis struct {
	ModelAnswer      string `json:"modelAnswer"`
	PedagogicalNotes string `json:"pedagogicalNotes"`
}

// Config holds generation settings.
type Config struct {
	AnswerMaxTokens     int
	AnswerTemperature   float64
	AnalysisMaxTokens   int
	AnalysisTemperature float64
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		AnswerMaxTokens:     1024,
		AnswerTemperature:   0.7,
		AnalysisMaxTokens:   2048,
		AnalysisTemperature: 0.6,
	}
}

// Service manages questions.
type Service struct {
	store    *store.Store
	provider llm.Provider
	cfg      Config
	now      func() time.Time
	log      *logger.Logger
}

// NewService creates a Q&A service.
func NewService(s *store.Store, provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	return &Service{store: s, provider: provider, cfg: cfg, now: time.Now, log: log}
}

// Ask stores a new question and returns it with its id.
func (s *Service) Ask(ctx context.Context, q Question) (*Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	switch {
	case q.StudentID == 0:
		return nil, fmt.Errorf("%w: student is required", ErrInvalidQuestion)
	case q.Text == "":
		return nil, fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	case q.Subject == "" || q.Concept == "":
		return nil, fmt.Errorf("%w: subject and concept are required", ErrInvalidQuestion)
	}
	q.ID = ""
	q.Answer, q.Analysis = nil, nil
	if q.AskedAt.IsZero() {
		q.AskedAt = s.now()
	}

	value, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}
	id, err := s.store.Collections().Append(ctx, store.PartitionQuestions, store.CollectionRecord{
		OwnerID:   q.StudentID,
		Value:     value,
		CreatedAt: q.AskedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("store question: %w", err)
	}
	q.ID = id
	s.log.Debug("question asked", "id", id, "student", q.StudentID, "concept", q.Concept)
	return &q, nil
}

// Get returns one question.
func (s *Service) Get(ctx context.Context, id string) (*Question, error) {
	return get(ctx, s.store.Collections(), id)
}

// ForStudent returns a student's questions, newest first.
func (s *Service) ForStudent(ctx context.Context, studentID int64) ([]Question, error) {
	return s.query(ctx, store.Filter{OwnerID: studentID})
}

// All returns every question, newest first.
func (s *Service) All(ctx context.Context) ([]Question, error) {
	return s.query(ctx, store.Filter{})
}

// Answer asks the mentor model to reply to the question and stores the
// reply on it.
func (s *Service) Answer(ctx context.Context, id, language string) (*Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnswer)
	req := llm.UserPrompt(mentorSystemPrompt, buildAnswerMessage(q, language), AnswerSchema, s.cfg.AnswerMaxTokens)
	req.Temperature = s.cfg.AnswerTemperature
	ans, _, err := llm.GenerateInto[Answer](ctx, s.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%w: answer: %w", ErrGenerationFailed, err)
	}
	return s.update(ctx, id, func(q *Question) { q.Answer = ans })
}

// Analyze prepares the teacher's notes for the question and stores them.
func (s *Service) Analyze(ctx context.Context, id, language string) (*Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)
	req := llm.UserPrompt(coachSystemPrompt, buildAnalysisMessage(q, language), AnalysisSchema, s.cfg.AnalysisMaxTokens)
	req.Temperature = s.cfg.AnalysisTemperature
	an, _, err := llm.GenerateInto[Analysis](ctx, s.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%w: analysis: %w", ErrGenerationFailed, err)
	}
	return s.update(ctx, id, func(q *Question) { q.Analysis = an })
}

// update re-reads the question inside a transaction so concurrent answer
// and analysis writes do not overwrite each other.
func (s *Service) update(ctx context.Context, id string, apply func(*Question)) (*Question, error) {
	var out *Question
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		q, err := get(ctx, tx.Collections(), id)
		if err != nil {
			return err
		}
		apply(q)
		value, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("encode question: %w", err)
		}
		if err := tx.Collections().UpdateByID(ctx, store.PartitionQuestions, id, value); err != nil {
			return fmt.Errorf("update question: %w", err)
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func get(ctx context.Context, repo store.CollectionRepo, id string) (*Question, error) {
	rec, err := repo.Get(ctx, store.PartitionQuestions, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	var q Question
	if err := json.Unmarshal(rec.Value, &q); err != nil {
		return nil, fmt.Errorf("decode question %s: %w", id, err)
	}
	q.ID = rec.ID
	return &q, nil
}

func (s *Service) query(ctx context.Context, f store.Filter) ([]Question, error) {
	rows, err := s.store.Collections().Query(ctx, store.PartitionQuestions, f, nil)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		var q Question
		if err := json.Unmarshal(row.Value, &q); err != nil {
			s.log.Warn("skip undecodable question", "id", row.ID, "error", err)
			continue
		}
		q.ID = row.ID
		out = append(out, q)
	}
	slices.SortStableFunc(out, func(a, b Question) int { return b.AskedAt.Compare(a.AskedAt) })
	return out, nil
}
