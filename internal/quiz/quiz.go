// Package quiz generates multiple-choice question sets (chapter quizzes,
// concept drills, diagnostic tests, IQ and EQ exercises), checks a student's
// answers and records the score.
package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/alfanumrik/internal/content"
	"github.com/abhisek/alfanumrik/internal/progress"
)

// Type is the kind of question set.
type Type string

const (
	// TypeQuiz tests a chapter's key concepts.
	TypeQuiz Type = "quiz"
	// TypePractice drills one concept.
	TypePractice Type = "practice"
	// TypeDiagnostic gauges a student's level in a subject. Its score places
	// the student in the chapter list and is not recorded.
	TypeDiagnostic Type = "diagnostic"
	TypeIQ         Type = "iq"
	TypeEQ         Type = "eq"
)

// Types lists every set type.
func Types() []Type {
	return []Type{TypeQuiz, TypePractice, TypeDiagnostic, TypeIQ, TypeEQ}
}

// ParseType parses a set type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question set type %q", s)
}

// RecordKind is the performance record kind a completed set is stored as.
// Diagnostic sets are not recorded.
func (t Type) RecordKind() (progress.Kind, bool) {
	switch t {
	case TypeQuiz:
		return progress.KindQuiz, true
	case TypePractice:
		return progress.KindExercise, true
	case TypeIQ:
		return progress.KindIQ, true
	case TypeEQ:
		return progress.KindEQ, true
	}
	return "", false
}

// defaultCount is the number of questions asked for when the input does not
// say.
func (t Type) defaultCount() int {
	switch t {
	case TypeQuiz, TypeDiagnostic:
		return 5
	}
	return 3
}

// IQ and EQ skill names.
var (
	IQSkills = []string{"Pattern Recognition", "Logic Puzzle", "Spatial Reasoning", "Analogical Reasoning"}
	EQSkills = []string{"Empathy", "Self-awareness", "Resilience", "Social Skills"}
)

// Subjects and chapter under which cognitive exercises are recorded.
const (
	CognitiveSubject = "Cognitive Skills"
	EmotionalSubject = "Emotional Intelligence"
	DailyExercise    = "Daily Exercise"
)

// Question is one multiple-choice question. Answer is always one of
// Options, spelled as in Options.
type Question struct {
	// Scenario is set for EQ questions only.
	Scenario    string   `json:"scenario,omitempty"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"correctAnswer"`
	Explanation string   `json:"explanation"`

	// Concept is the concept a quiz or practice question tests.
	Concept string `json:"conceptTitle,omitempty"`
	// Skill is the IQ or EQ skill tested.
	Skill string `json:"skill,omitempty"`
}

// Set is a generated question set with what it was generated for.
type Set struct {
	Type     Type   `json:"type"`
	Grade    string `json:"grade"`
	Subject  string `json:"subject,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
	Language string `json:"language"`

	// Concept is the drilled concept of a practice set.
	Concept string `json:"concept,omitempty"`

	Questions []Question `json:"questions"`
}

// GenerateInput holds what a set is generated from.
type GenerateInput struct {
	Type     Type
	Grade    string
	Subject  string
	Chapter  string
	Language string

	// Concepts are the chapter's key concepts for a quiz, or the single
	// drilled concept for practice.
	Concepts []content.Concept

	// Count is the number of questions; zero means the type's default.
	Count int
}

// Validate checks that in carries what its type needs.
func (in GenerateInput) Validate() error {
	if _, err := ParseType(string(in.Type)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	switch {
	case strings.TrimSpace(in.Grade) == "":
		return fmt.Errorf("%w: grade is required", ErrInvalidInput)
	case strings.TrimSpace(in.Language) == "":
		return fmt.Errorf("%w: language is required", ErrInvalidInput)
	case in.Count < 0 || in.Count > 20:
		return fmt.Errorf("%w: count %d outside 0..20", ErrInvalidInput, in.Count)
	}

	switch in.Type {
	case TypeQuiz:
		if in.Subject == "" || in.Chapter == "" {
			return fmt.Errorf("%w: a quiz needs a subject and chapter", ErrInvalidInput)
		}
		if len(in.Concepts) == 0 {
			return fmt.Errorf("%w: a quiz needs the chapter's key concepts", ErrInvalidInput)
		}
	case TypePractice:
		if in.Subject == "" || in.Chapter == "" {
			return fmt.Errorf("%w: practice needs a subject and chapter", ErrInvalidInput)
		}
		if len(in.Concepts) != 1 || strings.TrimSpace(in.Concepts[0].Title) == "" {
			return fmt.Errorf("%w: practice drills exactly one concept", ErrInvalidInput)
		}
	case TypeDiagnostic:
		if in.Subject == "" {
			return fmt.Errorf("%w: a diagnostic test needs a subject", ErrInvalidInput)
		}
	}
	return nil
}

func (in GenerateInput) count() int {
	if in.Count > 0 {
		return in.Count
	}
	return in.Type.defaultCount()
}
