// Package content serves chapter learning modules: generated once, then
// served from the cache and the store on every later request.
package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/alfanumrik/internal/store"
)

// Module is a chapter's learning module. The core fields are produced in one
// generation call; the enrichment sections are filled in later, one at a time.
type Module struct {
	ChapterTitle       string    `json:"chapterTitle"`
	Introduction       string    `json:"introduction"`
	LearningObjectives []string  `json:"learningObjectives"`
	PrerequisitesCheck []string  `json:"prerequisitesCheck,omitempty"`
	KeyConcepts        []Concept `json:"keyConcepts"`
	Summary            string    `json:"summary"`

	// ConceptMap is a prompt for an image generator, set only for chapters
	// with relationships worth drawing.
	ConceptMap string `json:"conceptMap,omitempty"`

	FormulaSheet                 []Formula         `json:"formulaSheet,omitempty"`
	CommonMistakes               []Mistake         `json:"commonMistakes,omitempty"`
	CategorizedProblems          *ProblemSet       `json:"categorizedProblems,omitempty"`
	Experiments                  []Experiment      `json:"experiments,omitempty"`
	TimelineOfEvents             []TimelineEvent   `json:"timelineOfEvents,omitempty"`
	KeyFigures                   []KeyFigure       `json:"keyFigures,omitempty"`
	VocabularyDeepDive           []VocabularyEntry `json:"vocabularyDeepDive,omitempty"`
	HigherOrderThinkingQuestions []HOTQuestion     `json:"higherOrderThinkingQuestions,omitempty"`
	LearningTricksAndMnemonics   []string          `json:"learningTricksAndMnemonics,omitempty"`
	CareerConnections            string            `json:"careerConnections,omitempty"`
}

// Concept is one key concept of a chapter.
type Concept struct {
	Title              string `json:"conceptTitle"`
	Explanation        string `json:"explanation"`
	RealWorldExample   string `json:"realWorldExample"`
	DiagramDescription string `json:"diagramDescription"`
}

type Formula struct {
	Formula     string `json:"formula"`
	Description string `json:"description"`
}

type Mistake struct {
	Mistake    string `json:"mistake"`
	Correction string `json:"correction"`
}

type Problem struct {
	Question string `json:"question"`
	Solution string `json:"solution"`
}

// ProblemSet groups practice problems by difficulty.
type ProblemSet struct {
	Conceptual          []Problem `json:"conceptual"`
	Application         []Problem `json:"application"`
	HigherOrderThinking []Problem `json:"higherOrderThinking"`
}

// Len returns the total number of problems.
func (p ProblemSet) Len() int {
	return len(p.Conceptual) + len(p.Application) + len(p.HigherOrderThinking)
}

type Experiment struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Materials        []string `json:"materials"`
	Steps            []string `json:"steps"`
	SafetyGuidelines string   `json:"safetyGuidelines"`
}

type TimelineEvent struct {
	Year         string `json:"year"`
	Event        string `json:"event"`
	Significance string `json:"significance"`
}

type KeyFigure struct {
	Name         string `json:"name"`
	Contribution string `json:"contribution"`
}

type VocabularyEntry struct {
	Term            string `json:"term"`
	Definition      string `json:"definition"`
	UsageInSentence string `json:"usageInSentence"`
	Etymology       string `json:"etymology,omitempty"`
}

type HOTQuestion struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
}

// ConceptTitles returns the titles of the key concepts in order.
func (m *Module) ConceptTitles() []string {
	titles := make([]string, len(m.KeyConcepts))
	for i, c := range m.KeyConcepts {
		titles[i] = c.Title
	}
	return titles
}

// Digest is the short description of the module sent along with section
// requests so enrichment stays consistent with the core text.
func (m *Module) Digest() string {
	var b strings.Builder
	b.WriteString(m.Introduction)
	if len(m.KeyConcepts) > 0 {
		b.WriteString("\nKey concepts: ")
		b.WriteString(strings.Join(m.ConceptTitles(), ", "))
	}
	if m.Summary != "" {
		b.WriteString("\nSummary: ")
		b.WriteString(m.Summary)
	}
	return b.String()
}

// ModuleKey identifies a module. Modules are shared by every student of a
// grade, so the key carries no student.
type ModuleKey struct {
	Grade    string
	Subject  string
	Chapter  string
	Language string
}

func (k ModuleKey) String() string {
	return store.Key("module", k.Grade, k.Subject, k.Chapter, k.Language)
}

// Validate checks that every part of the key is set.
func (k ModuleKey) Validate() error {
	for _, f := range []struct{ name, v string }{
		{"grade", k.Grade}, {"subject", k.Subject}, {"chapter", k.Chapter}, {"language", k.Language},
	} {
		if strings.TrimSpace(f.v) == "" {
			return fmt.Errorf("module key: %s is required", f.name)
		}
	}
	return nil
}

// FallbackModule is served when a module can be neither found nor
// generated. It is never stored.
func FallbackModule(chapter string) *Module {
	return &Module{
		ChapterTitle: chapter,
		Introduction: "We're having trouble connecting to our AI to generate this lesson. " +
			"Please check your internet connection and try again. " +
			"The app will continue to work in offline mode if you have viewed this content before.",
		LearningObjectives: []string{
			"Understand the key terms of this chapter.",
			"Practice related questions when online.",
		},
		KeyConcepts: []Concept{{
			Title: "Core Concept",
			Explanation: "Content is temporarily unavailable. This may be due to a connection issue " +
				"or high demand on our AI services. Please try again in a few moments.",
			RealWorldExample:   "N/A",
			DiagramDescription: "N/A",
		}},
		Summary: "Content is temporarily unavailable.",
	}
}
