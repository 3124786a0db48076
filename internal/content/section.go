package content

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SectionKind names an enrichment section of a module.
type SectionKind string

const (
	SectionFormulaSheet        SectionKind = "formula_sheet"
	SectionCommonMistakes      SectionKind = "common_mistakes"
	SectionCategorizedProblems SectionKind = "categorized_problems"
	SectionExperiments         SectionKind = "experiments"
	SectionTimeline            SectionKind = "timeline"
	SectionKeyFigures          SectionKind = "key_figures"
	SectionVocabulary          SectionKind = "vocabulary"
	SectionHOTQuestions        SectionKind = "hot_questions"
	SectionMnemonics           SectionKind = "mnemonics"
	SectionCareerConnections   SectionKind = "career_connections"
)

// Section is one generated enrichment section. ApplyTo merges it into a
// module, replacing whatever that section held before.
type Section interface {
	Kind() SectionKind
	ApplyTo(m *Module)
}

type (
	FormulaSheet        []Formula
	CommonMistakes      []Mistake
	CategorizedProblems ProblemSet
	Experiments         []Experiment
	Timeline            []TimelineEvent
	KeyFigures          []KeyFigure
	Vocabulary          []VocabularyEntry
	HOTQuestions        []HOTQuestion
	Mnemonics           []string
	CareerConnections   string
)

func (FormulaSheet) Kind() SectionKind        { return SectionFormulaSheet }
func (CommonMistakes) Kind() SectionKind      { return SectionCommonMistakes }
func (CategorizedProblems) Kind() SectionKind { return SectionCategorizedProblems }
func (Experiments) Kind() SectionKind         { return SectionExperiments }
func (Timeline) Kind() SectionKind            { return SectionTimeline }
func (KeyFigures) Kind() SectionKind          { return SectionKeyFigures }
func (Vocabulary) Kind() SectionKind          { return SectionVocabulary }
func (HOTQuestions) Kind() SectionKind        { return SectionHOTQuestions }
func (Mnemonics) Kind() SectionKind           { return SectionMnemonics }
func (CareerConnections) Kind() SectionKind   { return SectionCareerConnections }

func (s FormulaSheet) ApplyTo(m *Module)   { m.FormulaSheet = s }
func (s CommonMistakes) ApplyTo(m *Module) { m.CommonMistakes = s }
func (s CategorizedProblems) ApplyTo(m *Module) {
	p := ProblemSet(s)
	m.CategorizedProblems = &p
}
func (s Experiments) ApplyTo(m *Module)       { m.Experiments = s }
func (s Timeline) ApplyTo(m *Module)          { m.TimelineOfEvents = s }
func (s KeyFigures) ApplyTo(m *Module)        { m.KeyFigures = s }
func (s Vocabulary) ApplyTo(m *Module)        { m.VocabularyDeepDive = s }
func (s HOTQuestions) ApplyTo(m *Module)      { m.HigherOrderThinkingQuestions = s }
func (s Mnemonics) ApplyTo(m *Module)         { m.LearningTricksAndMnemonics = s }
func (s CareerConnections) ApplyTo(m *Module) { m.CareerConnections = string(s) }

// sectionInfo ties a kind to its module field and the schema of that field.
type sectionInfo struct {
	field  string
	schema map[string]any
	decode func(json.RawMessage) (Section, error)
}

func decodeAs[S Section](raw json.RawMessage) (Section, error) {
	var s S
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func object(fields ...string) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]any, len(fields))
	for i, f := range fields {
		props[f] = map[string]any{"type": "string"}
		required[i] = f
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// optional adds string properties that may be omitted.
func optional(obj map[string]any, fields ...string) map[string]any {
	props := obj["properties"].(map[string]any)
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}
	return obj
}

var stringList = arrayOf(map[string]any{"type": "string"})

var sectionTable = map[SectionKind]sectionInfo{
	SectionFormulaSheet: {
		field:  "formulaSheet",
		schema: arrayOf(object("formula", "description")),
		decode: decodeAs[FormulaSheet],
	},
	SectionCommonMistakes: {
		field:  "commonMistakes",
		schema: arrayOf(object("mistake", "correction")),
		decode: decodeAs[CommonMistakes],
	},
	SectionCategorizedProblems: {
		field: "categorizedProblems",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conceptual":          arrayOf(object("question", "solution")),
				"application":         arrayOf(object("question", "solution")),
				"higherOrderThinking": arrayOf(object("question", "solution")),
			},
			"required":             []any{"conceptual", "application", "higherOrderThinking"},
			"additionalProperties": false,
		},
		decode: decodeAs[CategorizedProblems],
	},
	SectionExperiments: {
		field: "experiments",
		schema: arrayOf(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":            map[string]any{"type": "string"},
				"description":      map[string]any{"type": "string"},
				"materials":        stringList,
				"steps":            stringList,
				"safetyGuidelines": map[string]any{"type": "string"},
			},
			"required":             []any{"title", "description", "materials", "steps", "safetyGuidelines"},
			"additionalProperties": false,
		}),
		decode: decodeAs[Experiments],
	},
	SectionTimeline: {
		field:  "timelineOfEvents",
		schema: arrayOf(object("year", "event", "significance")),
		decode: decodeAs[Timeline],
	},
	SectionKeyFigures: {
		field:  "keyFigures",
		schema: arrayOf(object("name", "contribution")),
		decode: decodeAs[KeyFigures],
	},
	SectionVocabulary: {
		field:  "vocabularyDeepDive",
		schema: arrayOf(optional(object("term", "definition", "usageInSentence"), "etymology")),
		decode: decodeAs[Vocabulary],
	},
	SectionHOTQuestions: {
		field:  "higherOrderThinkingQuestions",
		schema: arrayOf(object("question", "hint")),
		decode: decodeAs[HOTQuestions],
	},
	SectionMnemonics: {
		field:  "learningTricksAndMnemonics",
		schema: stringList,
		decode: decodeAs[Mnemonics],
	},
	SectionCareerConnections: {
		field:  "careerConnections",
		schema: map[string]any{"type": "string"},
		decode: decodeAs[CareerConnections],
	},
}

// SectionKinds returns every known kind in name order.
func SectionKinds() []SectionKind {
	kinds := make([]SectionKind, 0, len(sectionTable))
	for k := range sectionTable {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// ParseSectionKind validates a kind name.
func ParseSectionKind(s string) (SectionKind, error) {
	k := SectionKind(s)
	if _, ok := sectionTable[k]; !ok {
		return "", fmt.Errorf("unknown section %q", s)
	}
	return k, nil
}

// Present reports whether the module already carries section kind.
func (m *Module) Present(kind SectionKind) bool {
	switch kind {
	case SectionFormulaSheet:
		return len(m.FormulaSheet) > 0
	case SectionCommonMistakes:
		return len(m.CommonMistakes) > 0
	case SectionCategorizedProblems:
		return m.CategorizedProblems != nil && m.CategorizedProblems.Len() > 0
	case SectionExperiments:
		return len(m.Experiments) > 0
	case SectionTimeline:
		return len(m.TimelineOfEvents) > 0
	case SectionKeyFigures:
		return len(m.KeyFigures) > 0
	case SectionVocabulary:
		return len(m.VocabularyDeepDive) > 0
	case SectionHOTQuestions:
		return len(m.HigherOrderThinkingQuestions) > 0
	case SectionMnemonics:
		return len(m.LearningTricksAndMnemonics) > 0
	case SectionCareerConnections:
		return m.CareerConnections != ""
	}
	return false
}
