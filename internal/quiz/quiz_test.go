package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/content"
	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

var electricityConcepts = []content.Concept{
	{Title: "Electric Current", Explanation: "Flow of charge.", RealWorldExample: "Ceiling fan."},
	{Title: "Ohm's Law", Explanation: "V = IR.", RealWorldExample: "Phone charger."},
}

func quizInput() GenerateInput {
	return GenerateInput{
		Type:     TypeQuiz,
		Grade:    "Grade 10",
		Subject:  "Physics",
		Chapter:  "Electricity",
		Language: "English",
		Concepts: electricityConcepts,
		Count:    2,
	}
}

func mcq(text, answer, concept string) map[string]any {
	return map[string]any{
		"question":      text,
		"options":       []string{"1 A", "2 A", "3 A", "4 A"},
		"correctAnswer": answer,
		"explanation":   "I = V / R.",
		"conceptTitle":  concept,
	}
}

func questions(items ...map[string]any) llm.Reply {
	return llm.JSONReply(map[string]any{"questions": items})
}

type fixture struct {
	tracker *progress.Tracker
	fake    *llm.FakeProvider
	svc     *Service
}

func newFixture(t *testing.T, replies ...llm.Reply) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	fake := llm.NewFakeProvider(replies...)
	tr := progress.NewTracker(s, logger.Nop())
	return &fixture{
		tracker: tr,
		fake:    fake,
		svc:     NewService(NewLLMGenerator(fake, DefaultConfig()), tr, logger.Nop()),
	}
}

func TestGenerate_Quiz(t *testing.T) {
	f := newFixture(t, questions(
		mcq(" A 6 V battery drives a 3 ohm resistor. What is the current? ", "2 a", "ohm's law"),
		mcq("What flows in a wire?", "1 A", "Electric Current"),
	))

	set, err := f.svc.Generate(context.Background(), quizInput())
	require.NoError(t, err)
	assert.Equal(t, TypeQuiz, set.Type)
	assert.Equal(t, "Electricity", set.Chapter)
	require.Len(t, set.Questions, 2)

	q := set.Questions[0]
	assert.Equal(t, "A 6 V battery drives a 3 ohm resistor. What is the current?", q.Text)
	assert.Equal(t, "2 A", q.Answer, "answer takes the option's spelling")
	assert.Equal(t, "Ohm's Law", q.Concept, "concept takes the chapter's spelling")

	req := f.fake.Requests()[0]
	assert.Same(t, QuizSchema, req.Schema)
	assert.InDelta(t, 0.8, req.Temperature, 1e-9)
	assert.Contains(t, req.System, "English")
	assert.Contains(t, req.Messages[0].Content, "2-question")
	assert.Contains(t, req.Messages[0].Content, "Ohm's Law")
}

func TestGenerate_RetriesRejectedResponse(t *testing.T) {
	bad := mcq("What is the current?", "5 A", "Ohm's Law") // answer is not an option
	f := newFixture(t,
		questions(bad),
		questions(mcq("What is the current?", "2 A", "Ohm's Law")),
	)
	in := quizInput()
	in.Count = 1

	set, err := f.svc.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "2 A", set.Questions[0].Answer)
	assert.Equal(t, 2, f.fake.CallCount())
}

func TestGenerate_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected every attempt", func(t *testing.T) {
		stray := mcq("What is the current?", "2 A", "Magnetism")
		f := newFixture(t, questions(stray), questions(stray), questions(stray), questions(stray))
		_, err := f.svc.Generate(ctx, quizInput())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "topic", verr.Validator)
		assert.Equal(t, 3, f.fake.CallCount())
	})

	t.Run("provider error is not retried here", func(t *testing.T) {
		f := newFixture(t, llm.Reply{Err: &llm.Error{Kind: llm.KindQuota}})
		_, err := f.svc.Generate(ctx, quizInput())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.True(t, llm.IsKind(err, llm.KindQuota))
		assert.Equal(t, 1, f.fake.CallCount())
	})
}

func TestGenerate_InvalidInput(t *testing.T) {
	for name, mutate := range map[string]func(*GenerateInput){
		"unknown type":          func(in *GenerateInput) { in.Type = "essay" },
		"no grade":              func(in *GenerateInput) { in.Grade = " " },
		"no language":           func(in *GenerateInput) { in.Language = "" },
		"quiz without concepts": func(in *GenerateInput) { in.Concepts = nil },
		"practice two concepts": func(in *GenerateInput) { in.Type = TypePractice },
		"diagnostic no subject": func(in *GenerateInput) { in.Type, in.Subject = TypeDiagnostic, "" },
		"too many":              func(in *GenerateInput) { in.Count = 50 },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			in := quizInput()
			mutate(&in)
			_, err := f.svc.Generate(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.NotErrorIs(t, err, ErrGenerationFailed)
			assert.Zero(t, f.fake.CallCount())
		})
	}
}

func TestGenerate_TrimsToCount(t *testing.T) {
	f := newFixture(t, questions(
		mcq("Q1", "1 A", "Ohm's Law"), mcq("Q2", "2 A", "Ohm's Law"), mcq("Q3", "3 A", "Ohm's Law"),
	))
	set, err := f.svc.Generate(context.Background(), quizInput())
	require.NoError(t, err)
	assert.Len(t, set.Questions, 2)
}

func TestGenerate_PracticeAndCognitive(t *testing.T) {
	ctx := context.Background()

	t.Run("practice pins the concept", func(t *testing.T) {
		f := newFixture(t, questions(mcq("Q1", "1 A", "anything")))
		in := quizInput()
		in.Type, in.Concepts, in.Count = TypePractice, electricityConcepts[1:], 0
		set, err := f.svc.Generate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "Ohm's Law", set.Concept)
		assert.Equal(t, "Ohm's Law", set.Questions[0].Concept)
		req := f.fake.Requests()[0]
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		assert.Contains(t, req.Messages[0].Content, "Generate 3 multiple-choice questions")
	})

	t.Run("eq uses best response", func(t *testing.T) {
		f := newFixture(t, questions(map[string]any{
			"scenario":     "Your friend did not get picked for the team.",
			"question":     "What do you do?",
			"options":      []string{"Laugh", "Ignore them", "Sit with them and listen", "Tell everyone"},
			"bestResponse": "Sit with them and listen",
			"explanation":  "Listening shows empathy.",
			"skill":        "Empathy",
		}))
		set, err := f.svc.Generate(ctx, GenerateInput{Type: TypeEQ, Grade: "Grade 7", Language: "English", Count: 1})
		require.NoError(t, err)
		q := set.Questions[0]
		assert.Equal(t, "Sit with them and listen", q.Answer)
		assert.Equal(t, "Empathy", q.Skill)
		assert.NotEmpty(t, q.Scenario)
		assert.Same(t, EQSchema, f.fake.Requests()[0].Schema)
	})

	t.Run("iq rejects unknown skill", func(t *testing.T) {
		item := mcq("2, 4, 8, ?", "16", "")
		item["options"] = []string{"10", "12", "16", "14"}
		item["skill"] = "Memory"
		f := newFixture(t, questions(item), questions(item), questions(item))
		_, err := f.svc.Generate(ctx, GenerateInput{Type: TypeIQ, Grade: "Grade 7", Language: "English"})
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestSchemasAcceptGeneratedShapes(t *testing.T) {
	raw := func(v any) json.RawMessage {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}
	assert.NoError(t, QuizSchema.Validate(raw(map[string]any{"questions": []any{mcq("Q", "1 A", "Ohm's Law")}})))

	three := mcq("Q", "1 A", "Ohm's Law")
	three["options"] = []string{"1 A", "2 A", "3 A"}
	assert.Error(t, QuizSchema.Validate(raw(map[string]any{"questions": []any{three}})))
	assert.Error(t, QuizSchema.Validate(raw(map[string]any{"questions": []any{}})))

	iq := map[string]any{
		"question": "2, 4, 8, ?", "options": []string{"10", "12", "16", "14"},
		"correctAnswer": "16", "explanation": "Doubles.", "skill": "Pattern Recognition",
	}
	assert.NoError(t, IQSchema.Validate(raw(map[string]any{"questions": []any{iq}})))
	iq["skill"] = "Memory"
	assert.Error(t, IQSchema.Validate(raw(map[string]any{"questions": []any{iq}})))
}

func TestCheckAnswer(t *testing.T) {
	q := &Question{Options: []string{"10", "12", "16", "14"}, Answer: "16"}
	tests := []struct {
		answer string
		want   bool
	}{
		{"16", true},
		{" 3 ", true},
		{"c", true},
		{"C", true},
		{"2", false},
		{"12", false},
		{"A", false},
		{"", false},
		{"sixteen", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CheckAnswer(tt.answer, q), "answer %q", tt.answer)
	}

	text := &Question{Options: []string{"Laugh", "Ignore them", "Listen", "Shout"}, Answer: "Listen"}
	assert.True(t, CheckAnswer("listen", text))
	assert.Equal(t, "B", OptionLabel(1))
}

func practiceSet() *Set {
	q := Question{Text: "V = 6, R = 3. I = ?", Options: []string{"1 A", "2 A", "3 A", "4 A"}, Answer: "2 A", Explanation: "I = V/R", Concept: "Ohm's Law"}
	return &Set{
		Type: TypePractice, Grade: "Grade 10", Subject: "Physics", Chapter: "Electricity", Language: "English",
		Concept: "Ohm's Law", Questions: []Question{q, q, q, q},
	}
}

func TestSubmit_Practice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	key := progress.ChapterKey{StudentID: 7, Grade: "Grade 10", Subject: "Physics", Chapter: "Electricity", Language: "English"}

	res, err := f.svc.Submit(ctx, 7, practiceSet(), []string{"b", "1", "2 A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 75, res.Score)
	assert.True(t, res.Mastered)
	assert.Equal(t, "1 A", res.Outcomes[1].Picked)
	assert.False(t, res.Outcomes[1].Correct)

	require.NotNil(t, res.Record)
	assert.Equal(t, progress.KindExercise, res.Record.Kind)
	assert.Equal(t, "Ohm's Law", res.Record.Context)

	p, err := f.tracker.ChapterProgress(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusMastered, p["Ohm's Law"])

	records, err := f.tracker.Records(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 75, records[0].Score)
}

func TestSubmit_PracticeBelowMastery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.svc.Submit(ctx, 7, practiceSet(), []string{"b", "a", "a", ""})
	require.NoError(t, err)
	assert.Equal(t, 25, res.Score)
	assert.False(t, res.Mastered)

	p, err := f.tracker.ChapterProgress(ctx, progress.ChapterKey{StudentID: 7, Grade: "Grade 10", Subject: "Physics", Chapter: "Electricity", Language: "English"})
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestSubmit_Cognitive(t *testing.T) {
	set := &Set{Type: TypeIQ, Grade: "Grade 7", Language: "English", Questions: []Question{
		{Text: "2, 4, 8, ?", Options: []string{"10", "12", "16", "14"}, Answer: "16", Skill: "Pattern Recognition"},
		{Text: "Odd one out", Options: []string{"Cat", "Dog", "Car", "Cow"}, Answer: "Car", Skill: "Logic Puzzle"},
		{Text: "Hand is to glove as foot is to ?", Options: []string{"Shoe", "Hat", "Sock", "Leg"}, Answer: "Sock", Skill: "Analogical Reasoning"},
	}}
	f := newFixture(t)
	res, err := f.svc.Submit(context.Background(), 7, set, []string{"16", "car", "A"})
	require.NoError(t, err)
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, progress.KindIQ, res.Record.Kind)
	assert.Equal(t, CognitiveSubject, res.Record.Subject)
	assert.Equal(t, DailyExercise, res.Record.Chapter)
	assert.Equal(t, "Analogical Reasoning", res.Record.Context)

	set.Type = TypeEQ
	res, err = f.svc.Submit(context.Background(), 7, set, []string{"16", "car", "sock"})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, EmotionalSubject, res.Record.Subject)
}

func TestSubmit_DiagnosticIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	set := practiceSet()
	set.Type, set.Chapter, set.Concept = TypeDiagnostic, "", ""

	res, err := f.svc.Submit(ctx, 7, set, []string{"b", "b", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.Score)
	assert.Nil(t, res.Record)

	records, err := f.tracker.Records(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubmit_AnswerCount(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), 7, practiceSet(), []string{"b"})
	assert.ErrorIs(t, err, ErrAnswerCount)
}

func TestPlace(t *testing.T) {
	chapters := []string{"Real Numbers", "Polynomials", "Linear Equations", "Quadratics", "Progressions"}
	assert.Equal(t, Placement{LevelHigh, "Linear Equations"}, Place(80, chapters))
	assert.Equal(t, Placement{LevelMid, "Real Numbers"}, Place(60, chapters))
	assert.Equal(t, Placement{LevelLow, "Real Numbers"}, Place(20, chapters))
	assert.Equal(t, Placement{Level: LevelHigh}, Place(100, nil))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" IQ ")
	require.NoError(t, err)
	assert.Equal(t, TypeIQ, typ)
	_, err = ParseType("essay")
	assert.Error(t, err)

	kind, ok := TypePractice.RecordKind()
	assert.True(t, ok)
	assert.Equal(t, progress.KindExercise, kind)
	_, ok = TypeDiagnostic.RecordKind()
	assert.False(t, ok)
}
