package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/alfanumrik/internal/llm"
)

// Generator produces module content.
type Generator interface {
	// GenerateModule produces the core fields of a module.
	GenerateModule(ctx context.Context, key ModuleKey, studentName string) (*Module, error)

	// GenerateSection produces one enrichment section. digest describes the
	// module it will be merged into.
	GenerateSection(ctx context.Context, key ModuleKey, kind SectionKind, digest string) (Section, error)
}

// GeneratorConfig holds generation settings.
type GeneratorConfig struct {
	ModuleMaxTokens  int
	SectionMaxTokens int
	Temperature      float64
}

// DefaultGeneratorConfig returns the settings used by the CLI.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ModuleMaxTokens:  8192,
		SectionMaxTokens: 8192,
		Temperature:      0.8,
	}
}

// LLMGenerator generates content with a text model.
type LLMGenerator struct {
	provider llm.Provider
	cfg      GeneratorConfig
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, cfg: cfg}
}

var conceptSchema = object("conceptTitle", "explanation", "realWorldExample", "diagramDescription")

// ModuleSchema constrains the core module response.
var ModuleSchema = &llm.Schema{
	Name:        "learning-module",
	Description: "Core learning module for one chapter",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chapterTitle":       map[string]any{"type": "string"},
			"introduction":       map[string]any{"type": "string"},
			"learningObjectives": stringList,
			"prerequisitesCheck": stringList,
			"keyConcepts": map[string]any{
				"type":     "array",
				"items":    conceptSchema,
				"minItems": 1,
			},
			"summary":      map[string]any{"type": "string"},
			"conceptMap":   map[string]any{"type": "string"},
			"formulaSheet": sectionTable[SectionFormulaSheet].schema,
		},
		"required":             []any{"chapterTitle", "introduction", "learningObjectives", "keyConcepts", "summary"},
		"additionalProperties": false,
	},
}

// sectionSchema wraps a section's schema in a single-key object.
func sectionSchema(kind SectionKind) *llm.Schema {
	info := sectionTable[kind]
	return &llm.Schema{
		Name:        "section-" + string(kind),
		Description: "The " + info.field + " section of a learning module",
		Definition: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{info.field: info.schema},
			"required":             []any{info.field},
			"additionalProperties": false,
		},
	}
}

func (g *LLMGenerator) GenerateModule(ctx context.Context, key ModuleKey, studentName string) (*Module, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	req := llm.UserPrompt(contentSystemPrompt(key.Language), buildModuleMessage(key, studentName), ModuleSchema, g.cfg.ModuleMaxTokens)
	req.Temperature = g.cfg.Temperature

	m, _, err := llm.GenerateInto[Module](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("module generation: %w", err)
	}
	if len(m.KeyConcepts) == 0 {
		return nil, fmt.Errorf("module generation: response has no key concepts")
	}
	// The title is the chapter name, whatever the model wrote.
	m.ChapterTitle = key.Chapter
	return m, nil
}

func (g *LLMGenerator) GenerateSection(ctx context.Context, key ModuleKey, kind SectionKind, digest string) (Section, error) {
	info, ok := sectionTable[kind]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", kind)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSection)

	req := llm.UserPrompt(contentSystemPrompt(key.Language), buildSectionMessage(key, info.field, kind, digest), sectionSchema(kind), g.cfg.SectionMaxTokens)
	req.Temperature = g.cfg.Temperature

	out, _, err := llm.GenerateInto[map[string]json.RawMessage](ctx, g.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%s generation: %w", kind, err)
	}
	raw, ok := (*out)[info.field]
	if !ok {
		return nil, fmt.Errorf("%s generation: response lacks %q", kind, info.field)
	}
	s, err := info.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s generation: decode: %w", kind, err)
	}
	return s, nil
}

func contentSystemPrompt(language string) string {
	return "You are an expert educational content creator for the Indian K-12 CBSE curriculum, " +
		"aligned with the latest syllabus and NCERT textbooks. All information must be factually correct. " +
		"Use Indian contexts and examples where appropriate. Your entire response must be in the " +
		language + " language. Write plain text with newline characters; no markdown."
}

func buildModuleMessage(key ModuleKey, studentName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create the core learning module for a %s student named %s on the chapter %q in %s.\n",
		key.Grade, studentName, key.Chapter, key.Subject)
	b.WriteString("The tone should be authoritative yet encouraging.\n")
	fmt.Fprintf(&b, `
Generate only these fields:
- chapterTitle: exactly %q.
- introduction: open with a hook that grabs the student's attention.
- learningObjectives: specific, measurable outcomes from the syllabus.
- prerequisitesCheck: concepts the student should know before starting.
- keyConcepts: for each concept a clear conceptTitle, a step-by-step explanation, a relatable realWorldExample and a detailed diagramDescription for a visual aid.
- formulaSheet: for Mathematics, Physics or Chemistry, every relevant formula with a brief description. Omit it when the chapter has no formulas.
- summary: the key takeaways.
- conceptMap: for chapters with complex relationships such as cycles or flows, a detailed prompt for an image generator to draw a concept map. Omit it otherwise.

Do not generate practice problems, experiments, common mistakes or any other deep section. They are generated on demand later.`, key.Chapter)
	return b.String()
}

func buildSectionMessage(key ModuleKey, field string, kind SectionKind, digest string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade: %s\nSubject: %s\nChapter: %q\n", key.Grade, key.Subject, key.Chapter)
	fmt.Fprintf(&b, "Chapter core content:\n%s\n\n", digest)
	fmt.Fprintf(&b, "Generate ONLY the %q section of this chapter's learning module. ", field)
	b.WriteString("It must be comprehensive, pedagogically sound and appropriate for the grade.\n")
	if kind == SectionCategorizedProblems {
		fmt.Fprintf(&b, "Generate at least %d practice questions modelled on recent board exam patterns, split across conceptual, application and higher order thinking problems, each with a worked solution.\n",
			problemCount(key.Grade))
	}
	fmt.Fprintf(&b, "Respond with a JSON object with the single key %q.", field)
	return b.String()
}

// problemCount is the minimum problem bank size for a grade label such as
// "Grade 10".
func problemCount(grade string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.ToLower(grade), "grade")))
	switch {
	case n >= 11:
		return 40
	case n >= 9:
		return 35
	case n >= 6:
		return 25
	default:
		return 15
	}
}
