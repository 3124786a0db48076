package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/alfanumrik/internal/curriculum"
	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
)

// ErrPathGenerationFailed is returned when the explanation for a decision
// could not be generated. There is no fallback recommendation.
var ErrPathGenerationFailed = errors.New("failed to generate a personalized path")

// Student is the input to Next.
type Student struct {
	ID          int64
	Name        string
	Grade       string
	Performance []progress.Record
}

// AdaptiveAction is a decision with its explanation.
type AdaptiveAction struct {
	Type       ActionType `json:"type"`
	Tier       Tier       `json:"tier"`
	Subject    string     `json:"subject,omitempty"`
	Chapter    string     `json:"chapter,omitempty"`
	Skill      string     `json:"skill,omitempty"`
	Reasoning  string     `json:"reasoning"`
	Confidence float64    `json:"confidence"`
}

// Config holds selector generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.8}
}

// ExplanationSchema constrains the model's reply.
var ExplanationSchema = &llm.Schema{
	Name:        "adaptive-explanation",
	Description: "Student-facing reasoning and confidence for a chosen next step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One encouraging sentence addressed to the student",
			},
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"skill": map[string]any{
				"type":        "string",
				"description": "For cognitive exercises, the skill the exercise trains",
			},
		},
		"required":             []any{"reasoning", "confidence"},
		"additionalProperties": false,
	},
}

type explanation struct {
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
	Skill      string  `json:"skill"`
}

// Selector chooses a student's next action.
type Selector struct {
	provider llm.Provider
	catalog  *curriculum.Catalog
	cfg      Config
	log      *logger.Logger
}

// NewSelector creates a selector. catalog supplies chapter order for
// advancing.
func NewSelector(provider llm.Provider, catalog *curriculum.Catalog, cfg Config, log *logger.Logger) *Selector {
	return &Selector{provider: provider, catalog: catalog, cfg: cfg, log: log}
}

// Decide runs the rules without calling the model.
func (s *Selector) Decide(st Student) Decision {
	var grade *curriculum.Grade
	if s.catalog != nil {
		grade, _ = s.catalog.Grade(st.Grade)
	}
	return Select(st.Performance, grade)
}

// Next decides the student's next action and asks the model to explain it.
// The model cannot change the decision; its confidence is clamped into the
// decision's tier band.
func (s *Selector) Next(ctx context.Context, st Student, language string) (*AdaptiveAction, error) {
	d := s.Decide(st)
	ctx = llm.WithPurpose(ctx, llm.PurposePath)

	user, err := buildExplanationMessage(st, d, language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathGenerationFailed, err)
	}
	req := llm.UserPrompt(explanationSystemPrompt, user, ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	out, _, err := llm.GenerateInto[explanation](ctx, s.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathGenerationFailed, err)
	}
	reasoning := strings.TrimSpace(out.Reasoning)
	if reasoning == "" {
		return nil, fmt.Errorf("%w: empty reasoning", ErrPathGenerationFailed)
	}

	action := &AdaptiveAction{
		Type:       d.Action,
		Tier:       d.Tier,
		Subject:    d.Subject,
		Chapter:    d.Chapter,
		Reasoning:  reasoning,
		Confidence: d.Tier.Clamp(out.Confidence),
	}
	if !d.Action.Academic() {
		action.Skill = strings.TrimSpace(out.Skill)
	}
	s.log.Debug("next action", "student", st.ID, "type", action.Type, "tier", int(d.Tier),
		"chapter", action.Chapter, "confidence", action.Confidence)
	return action, nil
}

const explanationSystemPrompt = `You are an adaptive learning assistant for K-12 students. The next step for the student has already been chosen. Explain it to the student in one warm, specific sentence and rate your confidence that it is the most useful step.`

// historyEntry is the compact form of a record sent to the model.
type historyEntry struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter,omitempty"`
	Score   int    `json:"score"`
	Kind    string `json:"type"`
	Date    string `json:"date"`
}

func buildExplanationMessage(st Student, d Decision, language string) (string, error) {
	recent := append([]progress.Record(nil), st.Performance...)
	progress.SortByRecent(recent)
	if len(recent) > 30 {
		recent = recent[:30]
	}
	entries := make([]historyEntry, len(recent))
	for i, r := range recent {
		entries[i] = historyEntry{
			Subject: r.Subject, Chapter: r.Chapter, Score: r.Score,
			Kind: string(r.Kind), Date: string(progress.DateOf(r.CompletedAt)),
		}
	}
	hist, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s\nGrade: %s\n", st.Name, st.Grade)
	fmt.Fprintf(&b, "Recent performance (newest first): %s\n\n", hist)
	b.WriteString("Chosen next step: ")
	switch d.Action {
	case ActionReview:
		fmt.Fprintf(&b, "review the chapter %q in %s; the student scored %.0f%%, which shows a foundational gap.", d.Chapter, d.Subject, d.Score)
	case ActionPractice:
		fmt.Fprintf(&b, "practice exercises on the chapter %q in %s; the student scored %.0f%%, just short of solid.", d.Chapter, d.Subject, d.Score)
	case ActionAdvance:
		fmt.Fprintf(&b, "start the new chapter %q in %s, the student's strongest subject (average %.0f%%). Praise that strength.", d.Chapter, d.Subject, d.Score)
	case ActionIQExercise:
		b.WriteString("a fun IQ exercise such as a logic or pattern puzzle. Name the skill it trains in the skill field.")
	case ActionEQExercise:
		b.WriteString("an emotional intelligence exercise on a skill such as empathy or resilience. Name the skill in the skill field.")
	}
	lo, hi := d.Tier.ConfidenceBand()
	fmt.Fprintf(&b, "\n\nConfidence must be between %.1f and %.1f.\n", lo, hi)
	fmt.Fprintf(&b, "Write the reasoning in %s.", language)
	return b.String(), nil
}
