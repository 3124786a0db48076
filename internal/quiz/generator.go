package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/alfanumrik/internal/llm"
)

// Generator produces question sets.
type Generator interface {
	// Generate returns a validated set for in.
	Generate(ctx context.Context, in GenerateInput) (*Set, error)
}

// Config controls LLMGenerator.
type Config struct {
	// Validators run in order on every question; the first failure rejects
	// the whole response.
	Validators []Validator

	// MaxAttempts bounds how often a response rejected by a retryable
	// validator is regenerated.
	MaxAttempts int

	MaxTokens int
}

// DefaultConfig returns the validator chain and limits used by the CLI.
func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}, &TopicValidator{}},
		MaxAttempts: 3,
		MaxTokens:   4096,
	}
}

// LLMGenerator generates sets with a text model.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, cfg: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, in GenerateInput) (*Set, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	purpose := llm.PurposeQuiz
	if in.Type != TypeQuiz && in.Type != TypeDiagnostic {
		purpose = llm.PurposeExercise
	}
	ctx = llm.WithPurpose(ctx, purpose)

	var err error
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		var set *Set
		set, err = g.generateOnce(ctx, in)
		if err == nil {
			return set, nil
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, err
}

func (g *LLMGenerator) generateOnce(ctx context.Context, in GenerateInput) (*Set, error) {
	req := llm.UserPrompt(systemPrompt(in.Language), buildUserMessage(in), schemaFor(in.Type), g.cfg.MaxTokens)
	req.Temperature = temperature(in.Type)

	out, _, err := llm.GenerateInto[wireSet](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%s generation: %w", in.Type, err)
	}
	if len(out.Questions) == 0 {
		return nil, &ValidationError{Validator: "structural", Message: "no questions", Retryable: true}
	}

	wire := out.Questions
	if n := in.count(); len(wire) > n {
		wire = wire[:n]
	}
	set := &Set{
		Type:      in.Type,
		Grade:     in.Grade,
		Subject:   in.Subject,
		Chapter:   in.Chapter,
		Language:  in.Language,
		Questions: make([]Question, 0, len(wire)),
	}
	if in.Type == TypePractice {
		set.Concept = in.Concepts[0].Title
	}
	for i, w := range wire {
		q := w.question()
		normalize(&q, in)
		for _, v := range g.cfg.Validators {
			if verr := v.Validate(&q, in); verr != nil {
				verr.Message = fmt.Sprintf("question %d: %s", i+1, verr.Message)
				return nil, verr
			}
		}
		set.Questions = append(set.Questions, q)
	}
	return set, nil
}
