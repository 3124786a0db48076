package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/cache"
	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var electricity = ModuleKey{Grade: "Grade 10", Subject: "Physics", Chapter: "Electricity", Language: "English"}

func sampleModule() Module {
	return Module{
		ChapterTitle:       "Electricity",
		Introduction:       "Ever wondered how a torch lights up?",
		LearningObjectives: []string{"Define electric current.", "Apply Ohm's law."},
		KeyConcepts: []Concept{
			{Title: "Electric Current", Explanation: "Flow of charge.", RealWorldExample: "Ceiling fan.", DiagramDescription: "A simple circuit."},
			{Title: "Ohm's Law", Explanation: "V = IR.", RealWorldExample: "Phone charger.", DiagramDescription: "V-I graph."},
		},
		Summary:      "Current, voltage and resistance are related.",
		FormulaSheet: []Formula{{Formula: "V = IR", Description: "Ohm's law"}},
	}
}

func newTestService(t *testing.T, docs store.DocumentRepo, replies ...llm.Reply) (*Service, *llm.FakeProvider) {
	t.Helper()
	fake := llm.NewFakeProvider(replies...)
	gen := NewLLMGenerator(fake, DefaultGeneratorConfig())
	return NewService(cache.NewMemory(), docs, gen, logger.Nop()), fake
}

func TestGetOrGenerate_CacheHitReturnsIdenticalBytes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	svc, fake := newTestService(t, s.Documents(), llm.JSONReply(sampleModule()))

	first, err := svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)
	assert.False(t, first.WasCached)
	assert.False(t, first.Fallback)
	assert.Len(t, first.Module.KeyConcepts, 2)

	second, err := svc.GetOrGenerate(ctx, electricity, "Ravi")
	require.NoError(t, err)
	assert.True(t, second.WasCached)
	assert.True(t, bytes.Equal(first.Raw, second.Raw), "cached bytes differ")
	assert.Equal(t, 1, fake.CallCount())

	// A fresh process with an empty memory cache is served from the store.
	other, otherFake := newTestService(t, s.Documents())
	third, err := other.GetOrGenerate(ctx, electricity, "Meera")
	require.NoError(t, err)
	assert.True(t, third.WasCached)
	assert.True(t, bytes.Equal(first.Raw, third.Raw))
	assert.Zero(t, otherFake.CallCount())
}

func TestGetOrGenerate_ConcurrentCallersShareOneGeneration(t *testing.T) {
	s := openTestStore(t)
	svc, fake := newTestService(t, s.Documents(), llm.JSONReply(sampleModule()))

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.GetOrGenerate(context.Background(), electricity, "Asha")
			if err == nil {
				results[i] = res
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fake.CallCount())
	for _, res := range results {
		require.NotNil(t, res)
		assert.False(t, res.Fallback)
		assert.True(t, bytes.Equal(results[0].Raw, res.Raw))
	}
}

// gatedGenerator blocks GenerateModule until release is closed or the call's
// context ends.
type gatedGenerator struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedGenerator) GenerateModule(ctx context.Context, key ModuleKey, _ string) (*Module, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	select {
	case <-g.release:
		m := sampleModule()
		return &m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedGenerator) GenerateSection(context.Context, ModuleKey, SectionKind, string) (Section, error) {
	return nil, fmt.Errorf("not used")
}

func TestGetOrGenerate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gen := &gatedGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(cache.NewMemory(), openTestStore(t).Documents(), gen, logger.Nop())

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetOrGenerate(firstCtx, electricity, "Asha")
		firstErr <- err
	}()
	<-gen.started

	type outcome struct {
		res *Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := svc.GetOrGenerate(context.Background(), electricity, "Ravi")
		second <- outcome{res, err}
	}()
	time.Sleep(20 * time.Millisecond) // let the second caller join the flight

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(gen.release)
	got := <-second
	require.NoError(t, got.err)
	require.NotNil(t, got.res)
	assert.False(t, got.res.Fallback)
	assert.Equal(t, "Electricity", got.res.Module.ChapterTitle)
	assert.Equal(t, int32(1), gen.calls.Load())

	cached, err := svc.Cached(context.Background(), electricity)
	require.NoError(t, err)
	assert.Len(t, cached.KeyConcepts, 2)
}

func TestGetOrGenerate_PromptCarriesStudentAndLanguage(t *testing.T) {
	s := openTestStore(t)
	svc, fake := newTestService(t, s.Documents(), llm.JSONReply(sampleModule()))
	key := electricity
	key.Language = "Hindi"

	_, err := svc.GetOrGenerate(context.Background(), key, "Asha")
	require.NoError(t, err)

	req := fake.Requests()[0]
	assert.Same(t, ModuleSchema, req.Schema)
	assert.Contains(t, req.System, "Hindi")
	assert.Contains(t, req.Messages[0].Content, "Asha")
	assert.Contains(t, req.Messages[0].Content, `"Electricity"`)
	assert.InDelta(t, 0.8, req.Temperature, 1e-9)
}

func TestGetOrGenerate_TitleForcedToChapter(t *testing.T) {
	m := sampleModule()
	m.ChapterTitle = "Chapter 12"
	svc, _ := newTestService(t, openTestStore(t).Documents(), llm.JSONReply(m))

	res, err := svc.GetOrGenerate(context.Background(), electricity, "Asha")
	require.NoError(t, err)
	assert.Equal(t, "Electricity", res.Module.ChapterTitle)
}

func TestGetOrGenerate_FallbackIsNotStored(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	svc, fake := newTestService(t, s.Documents(), llm.Reply{Err: &llm.Error{Kind: llm.KindUnavailable}})

	res, err := svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.False(t, res.WasCached)
	assert.Equal(t, "Electricity", res.Module.ChapterTitle)
	assert.Equal(t, "Content is temporarily unavailable.", res.Module.Summary)
	assert.Equal(t, "Core Concept", res.Module.KeyConcepts[0].Title)

	_, err = s.Documents().GetDocument(ctx, store.PartitionModules, electricity.String())
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The next request tries again.
	fake.Push(llm.JSONReply(sampleModule()))
	res, err = svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "Ohm's Law", res.Module.KeyConcepts[1].Title)
}

func TestGetOrGenerate_EmptyConceptsFallsBack(t *testing.T) {
	m := sampleModule()
	m.KeyConcepts = nil
	svc, _ := newTestService(t, openTestStore(t).Documents(), llm.JSONReply(m))

	res, err := svc.GetOrGenerate(context.Background(), electricity, "Asha")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
}

// brokenDocs fails every call.
type brokenDocs struct{}

func (brokenDocs) GetDocument(context.Context, store.Partition, string) ([]byte, error) {
	return nil, store.ErrStorageUnavailable
}

func (brokenDocs) PutDocument(context.Context, store.Partition, string, []byte) error {
	return store.ErrStorageUnavailable
}

func TestGetOrGenerate_StorageErrorsAreMasked(t *testing.T) {
	ctx := context.Background()
	svc, fake := newTestService(t, brokenDocs{}, llm.JSONReply(sampleModule()))

	res, err := svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)
	assert.False(t, res.Fallback)

	// The memory cache still holds it.
	res, err = svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)
	assert.True(t, res.WasCached)
	assert.Equal(t, 1, fake.CallCount())
}

func TestGetOrGenerate_InvalidKey(t *testing.T) {
	svc, fake := newTestService(t, brokenDocs{})
	_, err := svc.GetOrGenerate(context.Background(), ModuleKey{Grade: "Grade 10", Subject: "Physics"}, "Asha")
	assert.Error(t, err)
	assert.Zero(t, fake.CallCount())
}

func TestUpdateSection_MergesAndPersists(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	svc, _ := newTestService(t, s.Documents(), llm.JSONReply(sampleModule()))

	_, err := svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)

	mistakes := CommonMistakes{{Mistake: "Adding resistors in parallel directly.", Correction: "Add reciprocals."}}
	m, err := svc.UpdateSection(ctx, electricity, mistakes)
	require.NoError(t, err)
	assert.Len(t, m.CommonMistakes, 1)

	problems := CategorizedProblems{Conceptual: []Problem{{Question: "What is 1 ampere?", Solution: "1 C/s."}}}
	_, err = svc.UpdateSection(ctx, electricity, problems)
	require.NoError(t, err)

	// Read back through a service with a cold cache.
	cold, _ := newTestService(t, s.Documents())
	got, err := cold.Cached(ctx, electricity)
	require.NoError(t, err)
	assert.Len(t, got.KeyConcepts, 2, "core fields survive the merge")
	assert.Equal(t, "Add reciprocals.", got.CommonMistakes[0].Correction)
	require.NotNil(t, got.CategorizedProblems)
	assert.Equal(t, 1, got.CategorizedProblems.Len())
	assert.True(t, got.Present(SectionCategorizedProblems))
	assert.False(t, got.Present(SectionExperiments))
}

func TestUpdateSection_NotFound(t *testing.T) {
	svc, _ := newTestService(t, openTestStore(t).Documents())
	_, err := svc.UpdateSection(context.Background(), electricity, Mnemonics{"VIBGYOR"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateSection(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	svc, fake := newTestService(t, s.Documents(),
		llm.JSONReply(sampleModule()),
		llm.JSONReply(map[string]any{
			"vocabularyDeepDive": []map[string]string{{
				"term": "Resistance", "definition": "Opposition to current.", "usageInSentence": "Nichrome has high resistance.",
			}},
		}),
		llm.Reply{Err: &llm.Error{Kind: llm.KindRateLimited}},
	)

	_, err := svc.GenerateSection(ctx, electricity, SectionVocabulary)
	assert.ErrorIs(t, err, ErrNotFound, "no module yet")

	_, err = svc.GetOrGenerate(ctx, electricity, "Asha")
	require.NoError(t, err)

	sec, err := svc.GenerateSection(ctx, electricity, SectionVocabulary)
	require.NoError(t, err)
	vocab, ok := sec.(Vocabulary)
	require.True(t, ok)
	assert.Equal(t, "Resistance", vocab[0].Term)

	req := fake.Requests()[1]
	assert.Equal(t, "section-vocabulary", req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, "Ohm's Law", "digest is sent along")

	m, err := svc.Cached(ctx, electricity)
	require.NoError(t, err)
	assert.True(t, m.Present(SectionVocabulary))

	_, err = svc.GenerateSection(ctx, electricity, SectionTimeline)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, llm.IsKind(err, llm.KindRateLimited))

	_, err = svc.GenerateSection(ctx, electricity, "poetry")
	assert.Error(t, err)
}

func TestSchemasAcceptGeneratedShapes(t *testing.T) {
	raw, err := json.Marshal(sampleModule())
	require.NoError(t, err)
	assert.NoError(t, ModuleSchema.Validate(raw))

	sections := []Section{
		FormulaSheet{{Formula: "P = VI", Description: "Power"}},
		CategorizedProblems{
			Conceptual:          []Problem{{Question: "q1", Solution: "s1"}},
			Application:         []Problem{{Question: "q2", Solution: "s2"}},
			HigherOrderThinking: []Problem{},
		},
		Experiments{{Title: "Ohm", Description: "d", Materials: []string{"cell"}, Steps: []string{"connect"}, SafetyGuidelines: "care"}},
		Vocabulary{{Term: "t", Definition: "d", UsageInSentence: "u", Etymology: "Greek"}},
		Mnemonics{"VIBGYOR"},
		CareerConnections("Electrical engineering."),
	}
	for _, sec := range sections {
		t.Run(string(sec.Kind()), func(t *testing.T) {
			field := sectionTable[sec.Kind()].field
			raw, err := json.Marshal(map[string]any{field: sec})
			require.NoError(t, err)
			assert.NoError(t, sectionSchema(sec.Kind()).Validate(raw))

			back, err := sectionTable[sec.Kind()].decode(mustField(t, raw, field))
			require.NoError(t, err)
			assert.Equal(t, sec, back)
		})
	}

	bad := []byte(`{"formulaSheet":[{"formula":"x"}]}`)
	assert.Error(t, sectionSchema(SectionFormulaSheet).Validate(bad))
}

func mustField(t *testing.T, raw []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[field]
}

func TestSectionKinds(t *testing.T) {
	kinds := SectionKinds()
	assert.Len(t, kinds, 10)
	for _, k := range kinds {
		got, err := ParseSectionKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseSectionKind("grammar")
	assert.Error(t, err)
}

func TestModuleKeyAndProblemCount(t *testing.T) {
	assert.Equal(t, "module/Grade 10/Physics/Electricity/English", electricity.String())
	hyphenated := ModuleKey{Grade: "Grade 10-Physics", Subject: "Electricity", Chapter: "English", Language: "x"}
	shifted := ModuleKey{Grade: "Grade 10", Subject: "Physics-Electricity", Chapter: "English", Language: "x"}
	assert.NotEqual(t, hyphenated.String(), shifted.String())

	tests := map[string]int{"Grade 12": 40, "Grade 11": 40, "Grade 9": 35, "grade 7": 25, "Grade 3": 15, "Class X": 15}
	for grade, want := range tests {
		assert.Equal(t, want, problemCount(grade), grade)
	}
}

func TestFallbackModuleIsFresh(t *testing.T) {
	a := FallbackModule("Polynomials")
	a.LearningObjectives[0] = "changed"
	b := FallbackModule("Polynomials")
	assert.Equal(t, "Understand the key terms of this chapter.", b.LearningObjectives[0])
}
