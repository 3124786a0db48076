package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// Validator checks one generated question.
type Validator interface {
	Name() string
	Validate(q *Question, in GenerateInput) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
	// Retryable is set when asking again is likely to fix it.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that text fields are present and that the
// options are four distinct strings, one of which is the answer.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, in GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	switch {
	case q.Text == "":
		return fail("question text is empty")
	case len(q.Text) > 1000:
		return fail("question text exceeds 1000 characters")
	case q.Explanation == "":
		return fail("explanation is empty")
	case len(q.Options) != 4:
		return fail(fmt.Sprintf("want 4 options, got %d", len(q.Options)))
	case in.Type == TypeEQ && q.Scenario == "":
		return fail("scenario is empty")
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		k := strings.ToLower(o)
		if o == "" {
			return fail("empty option")
		}
		if seen[k] {
			return fail(fmt.Sprintf("duplicate option %q", o))
		}
		seen[k] = true
	}
	if !slices.Contains(q.Options, q.Answer) {
		return fail(fmt.Sprintf("answer %q is not one of the options", q.Answer))
	}
	return nil
}

// TopicValidator checks that quiz questions name one of the chapter's
// concepts and that cognitive questions name a known skill.
type TopicValidator struct{}

func (v *TopicValidator) Name() string { return "topic" }

func (v *TopicValidator) Validate(q *Question, in GenerateInput) *ValidationError {
	switch in.Type {
	case TypeQuiz:
		for _, c := range in.Concepts {
			if c.Title == q.Concept {
				return nil
			}
		}
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("concept %q is not a key concept of the chapter", q.Concept), Retryable: true}
	case TypeIQ:
		if !slices.Contains(IQSkills, q.Skill) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown IQ skill %q", q.Skill), Retryable: true}
		}
	case TypeEQ:
		if !slices.Contains(EQSkills, q.Skill) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown EQ skill %q", q.Skill), Retryable: true}
		}
	}
	return nil
}

// normalize trims q and respells its answer and concept the way the options
// and the input spell them, so validators can compare exactly.
func normalize(q *Question, in GenerateInput) {
	q.Scenario = strings.TrimSpace(q.Scenario)
	q.Text = strings.TrimSpace(q.Text)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Concept = strings.TrimSpace(q.Concept)
	q.Skill = strings.TrimSpace(q.Skill)
	for i := range q.Options {
		q.Options[i] = strings.TrimSpace(q.Options[i])
	}

	for _, o := range q.Options {
		if strings.EqualFold(o, q.Answer) {
			q.Answer = o
			break
		}
	}

	switch in.Type {
	case TypeQuiz:
		for _, c := range in.Concepts {
			if strings.EqualFold(strings.TrimSpace(c.Title), q.Concept) {
				q.Concept = c.Title
				break
			}
		}
	case TypePractice:
		q.Concept = in.Concepts[0].Title
	case TypeDiagnostic:
		if q.Concept == "" {
			q.Concept = "Foundational Knowledge"
		}
	}
}
