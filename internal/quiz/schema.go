package quiz

import "github.com/abhisek/alfanumrik/internal/llm"

var (
	str     = map[string]any{"type": "string"}
	options = map[string]any{
		"type":     "array",
		"items":    str,
		"minItems": 4,
		"maxItems": 4,
	}
)

func enum(values []string) map[string]any {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return map[string]any{"type": "string", "enum": vs}
}

// questionsSchema wraps an item schema in {"questions": [...]}.
func questionsSchema(name, description string, item map[string]any) *llm.Schema {
	return &llm.Schema{
		Name:        name,
		Description: description,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"items":    item,
					"minItems": 1,
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// QuizSchema constrains quiz, practice and diagnostic sets.
var QuizSchema = questionsSchema("quiz", "Multiple-choice questions on a chapter's concepts", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question":      str,
		"options":       options,
		"correctAnswer": str,
		"explanation":   str,
		"conceptTitle":  str,
	},
	"required":             []any{"question", "options", "correctAnswer", "explanation", "conceptTitle"},
	"additionalProperties": false,
})

// IQSchema constrains IQ exercises.
var IQSchema = questionsSchema("iq-exercises", "Multiple-choice reasoning puzzles", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question":      str,
		"options":       options,
		"correctAnswer": str,
		"explanation":   str,
		"skill":         enum(IQSkills),
	},
	"required":             []any{"question", "options", "correctAnswer", "explanation", "skill"},
	"additionalProperties": false,
})

// EQSchema constrains EQ exercises.
var EQSchema = questionsSchema("eq-exercises", "Multiple-choice emotional intelligence scenarios", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"scenario":     str,
		"question":     str,
		"options":      options,
		"bestResponse": str,
		"explanation":  str,
		"skill":        enum(EQSkills),
	},
	"required":             []any{"scenario", "question", "options", "bestResponse", "explanation", "skill"},
	"additionalProperties": false,
})

func schemaFor(t Type) *llm.Schema {
	switch t {
	case TypeIQ:
		return IQSchema
	case TypeEQ:
		return EQSchema
	}
	return QuizSchema
}

// wireQuestion is one question as the model writes it.
type wireQuestion struct {
	Scenario      string   `json:"scenario"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	BestResponse  string   `json:"bestResponse"`
	Explanation   string   `json:"explanation"`
	ConceptTitle  string   `json:"conceptTitle"`
	Skill         string   `json:"skill"`
}

type wireSet struct {
	Questions []wireQuestion `json:"questions"`
}

func (w wireQuestion) question() Question {
	answer := w.CorrectAnswer
	if answer == "" {
		answer = w.BestResponse
	}
	return Question{
		Scenario:    w.Scenario,
		Text:        w.Question,
		Options:     w.Options,
		Answer:      answer,
		Explanation: w.Explanation,
		Concept:     w.ConceptTitle,
		Skill:       w.Skill,
	}
}
