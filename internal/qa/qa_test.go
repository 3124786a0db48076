package qa

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newTestService(t *testing.T, replies ...llm.Reply) (*Service, *llm.FakeProvider) {
	t.Helper()
	fake := llm.NewFakeProvider(replies...)
	svc := NewService(openTestStore(t), fake, DefaultConfig(), logger.Nop())
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, fake
}

func sampleQuestion(studentID int64, text string) Question {
	return Question{
		StudentID:   studentID,
		StudentName: "Asha",
		Grade:       "Grade 7",
		Subject:     "Science",
		Chapter:     "Nutrition in Plants",
		Concept:     "Photosynthesis",
		Text:        text,
	}
}

func TestAsk_StoresQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	q, err := svc.Ask(ctx, sampleQuestion(1, "  Why are leaves green? "))
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Why are leaves green?", q.Text)
	assert.False(t, q.AskedAt.IsZero())

	got, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, got.Text)
	assert.Nil(t, got.Answer)
	assert.Nil(t, got.Analysis)
}

func TestAsk_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		edit func(*Question)
	}{
		{"no student", func(q *Question) { q.StudentID = 0 }},
		{"blank text", func(q *Question) { q.Text = "   " }},
		{"no concept", func(q *Question) { q.Concept = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQuestion(1, "What is chlorophyll?")
			tt.edit(&q)
			_, err := svc.Ask(context.Background(), q)
			assert.ErrorIs(t, err, ErrInvalidQuestion)
		})
	}
}

func TestForStudent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Ask(ctx, sampleQuestion(1, "first"))
	require.NoError(t, err)
	second, err := svc.Ask(ctx, sampleQuestion(1, "second"))
	require.NoError(t, err)
	_, err = svc.Ask(ctx, sampleQuestion(2, "other student"))
	require.NoError(t, err)

	mine, err := svc.ForStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "other student", all[0].Text)
}

func TestAnswer_StoresMentorReply(t *testing.T) {
	ctx := context.Background()
	svc, fake := newTestService(t, llm.JSONReply(Answer{Relevant: true, Text: "Chlorophyll reflects green light."}))

	q, err := svc.Ask(ctx, sampleQuestion(1, "Why are leaves green?"))
	require.NoError(t, err)

	got, err := svc.Answer(ctx, q.ID, "Hindi")
	require.NoError(t, err)
	require.NotNil(t, got.Answer)
	assert.True(t, got.Answer.Relevant)
	assert.Equal(t, "Chlorophyll reflects green light.", got.Answer.Text)

	req := fake.Requests()[0]
	assert.Equal(t, 0.7, req.Temperature)
	assert.Same(t, AnswerSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Why are leaves green?")
	assert.Contains(t, req.Messages[0].Content, "Write in Hindi")

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Answer, stored.Answer)
}

func TestAnalyze_KeepsExistingAnswer(t *testing.T) {
	ctx := context.Background()
	svc, fake := newTestService(t,
		llm.JSONReply(Answer{Relevant: false, Text: "Let's get back to photosynthesis!"}),
		llm.JSONReply(Analysis{ModelAnswer: "Leaves contain chlorophyll.", PedagogicalNotes: "Link to light absorption."}),
	)

	q, err := svc.Ask(ctx, sampleQuestion(1, "What's your favourite game?"))
	require.NoError(t, err)
	_, err = svc.Answer(ctx, q.ID, "English")
	require.NoError(t, err)

	got, err := svc.Analyze(ctx, q.ID, "English")
	require.NoError(t, err)
	require.NotNil(t, got.Analysis)
	require.NotNil(t, got.Answer)
	assert.False(t, got.Answer.Relevant)
	assert.Equal(t, "Link to light absorption.", got.Analysis.PedagogicalNotes)

	req := fake.Requests()[1]
	assert.Equal(t, 0.6, req.Temperature)
	assert.Contains(t, req.Messages[0].Content, "Asha")
	assert.Contains(t, req.Messages[0].Content, "Nutrition in Plants")
}

func TestAnswer_FailureSurfacesAndStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, llm.Reply{Err: &llm.Error{Kind: llm.KindRateLimited}})

	q, err := svc.Ask(ctx, sampleQuestion(1, "Why are leaves green?"))
	require.NoError(t, err)

	_, err = svc.Answer(ctx, q.ID, "English")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, llm.IsKind(err, llm.KindRateLimited))

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Answer)
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	svc, fake := newTestService(t)

	_, err := svc.Answer(context.Background(), "missing", "English")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, fake.CallCount())
}
