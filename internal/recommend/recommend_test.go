package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/curriculum"
	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
)

var day0 = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

func rec(subject, chapter string, score int, daysAgo int) progress.Record {
	return progress.Record{
		Subject: subject, Chapter: chapter, Score: score,
		Kind: progress.KindQuiz, CompletedAt: day0.AddDate(0, 0, -daysAgo),
	}
}

func cog(kind progress.Kind, score int, daysAgo int) progress.Record {
	return progress.Record{Subject: "Cognitive", Score: score, Kind: kind, CompletedAt: day0.AddDate(0, 0, -daysAgo)}
}

func grade10(t *testing.T) *curriculum.Grade {
	t.Helper()
	c, err := curriculum.Embedded()
	require.NoError(t, err)
	g, ok := c.Grade("Grade 10")
	require.True(t, ok)
	return g
}

func TestSelect(t *testing.T) {
	g := grade10(t)

	tests := []struct {
		name    string
		history []progress.Record
		want    Decision
	}{
		{
			name: "practice on marginal chapter",
			history: []progress.Record{
				rec("Mathematics", "Real Numbers", 92, 3),
				rec("Mathematics", "Polynomials", 85, 2),
				rec("Physics", "Electricity", 68, 1),
			},
			want: Decision{Action: ActionPractice, Tier: TierWeakness, Subject: "Physics", Chapter: "Electricity", Score: 68},
		},
		{
			name: "review dominates strong records",
			history: []progress.Record{
				rec("Mathematics", "Real Numbers", 99, 9),
				rec("Mathematics", "Polynomials", 97, 8),
				rec("Chemistry", "Metals and Non-metals", 65, 2),
				rec("Physics", "Electricity", 45, 5),
				rec("Mathematics", "Triangles", 100, 1),
			},
			want: Decision{Action: ActionReview, Tier: TierWeakness, Subject: "Physics", Chapter: "Electricity", Score: 45},
		},
		{
			name:    "sixty is practice",
			history: []progress.Record{rec("Biology", "Heredity", 60, 1)},
			want:    Decision{Action: ActionPractice, Tier: TierWeakness, Subject: "Biology", Chapter: "Heredity", Score: 60},
		},
		{
			name: "equal low scores prefer most recent",
			history: []progress.Record{
				rec("Physics", "Electricity", 50, 4),
				rec("Chemistry", "Carbon and its Compounds", 50, 1),
			},
			want: Decision{Action: ActionReview, Tier: TierWeakness, Subject: "Chemistry", Chapter: "Carbon and its Compounds", Score: 50},
		},
		{
			name: "equal low scores at same time prefer first stored",
			history: []progress.Record{
				rec("Physics", "Electricity", 50, 1),
				rec("Chemistry", "Carbon and its Compounds", 50, 1),
			},
			want: Decision{Action: ActionReview, Tier: TierWeakness, Subject: "Physics", Chapter: "Electricity", Score: 50},
		},
		{
			name: "low cognitive scores are not academic weaknesses",
			history: []progress.Record{
				cog(progress.KindIQ, 20, 1),
				rec("Mathematics", "Real Numbers", 80, 2),
			},
			want: Decision{Action: ActionAdvance, Tier: TierAdvance, Subject: "Mathematics", Chapter: "Polynomials", Score: 80},
		},
		{
			name: "advance in best subject",
			history: []progress.Record{
				rec("Mathematics", "Real Numbers", 92, 3),
				rec("Mathematics", "Polynomials", 85, 2),
				rec("Physics", "Electricity", 75, 1),
			},
			want: Decision{Action: ActionAdvance, Tier: TierAdvance, Subject: "Mathematics", Chapter: "Pair of Linear Equations in Two Variables", Score: 88.5},
		},
		{
			name: "subject names match case-insensitively",
			history: []progress.Record{
				rec("physics", "light: reflection and refraction", 90, 1),
			},
			want: Decision{Action: ActionAdvance, Tier: TierAdvance, Subject: "Physics", Chapter: "The Human Eye and the Colourful World", Score: 90},
		},
		{
			name: "average tie goes to alphabetical subject",
			history: []progress.Record{
				rec("Chemistry", "Acids, Bases and Salts", 80, 1),
				rec("Biology", "Heredity", 80, 2),
			},
			want: Decision{Action: ActionAdvance, Tier: TierAdvance, Subject: "Biology", Chapter: "Life Processes", Score: 80},
		},
		{
			name:    "no history starts with iq",
			history: nil,
			want:    Decision{Action: ActionIQExercise, Tier: TierHolistic},
		},
		{
			name: "best subject finished falls to cognitive",
			history: []progress.Record{
				rec("History", "The Rise of Nationalism in Europe", 95, 3),
				rec("History", "Nationalism in India", 95, 2),
				rec("History", "The Making of a Global World", 95, 1),
				rec("Physics", "Electricity", 72, 1),
				cog(progress.KindIQ, 80, 1),
			},
			want: Decision{Action: ActionEQExercise, Tier: TierHolistic},
		},
		{
			name: "subject outside catalog falls to cognitive",
			history: []progress.Record{
				rec("Sanskrit", "Sandhi", 90, 2),
				cog(progress.KindEQ, 70, 1),
				cog(progress.KindIQ, 70, 3),
			},
			want: Decision{Action: ActionIQExercise, Tier: TierHolistic},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.history, g)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_WithoutGrade(t *testing.T) {
	d := Select([]progress.Record{rec("Mathematics", "Real Numbers", 90, 1)}, nil)
	assert.Equal(t, ActionIQExercise, d.Action)
}

func TestSelect_NeverCognitiveWhileChaptersRemain(t *testing.T) {
	g := grade10(t)
	maths, _ := g.Subject("Mathematics")
	titles := maths.ChapterTitles()

	// Complete all but the last chapter with passing scores, interleaved
	// with cognitive work.
	var history []progress.Record
	for i, title := range titles[:len(titles)-1] {
		history = append(history, rec("Mathematics", title, 70+i, len(titles)-i))
		history = append(history, cog(progress.KindIQ, 90, len(titles)-i))
		d := Select(history, g)
		require.Equal(t, ActionAdvance, d.Action, "after %q", title)
		assert.Equal(t, titles[i+1], d.Chapter)
	}
}

func TestTierBands(t *testing.T) {
	for _, tt := range []struct {
		tier   Tier
		lo, hi float64
	}{
		{TierWeakness, 0.9, 1.0},
		{TierAdvance, 0.8, 0.9},
		{TierHolistic, 0.7, 0.8},
	} {
		lo, hi := tt.tier.ConfidenceBand()
		assert.Equal(t, tt.lo, lo)
		assert.Equal(t, tt.hi, hi)
		assert.Equal(t, lo, tt.tier.Clamp(0))
		assert.Equal(t, hi, tt.tier.Clamp(1.5))
	}
	assert.InDelta(t, 0.85, TierAdvance.Clamp(0.85), 1e-9)
}

func newTestSelector(t *testing.T, replies ...llm.Reply) (*Selector, *llm.FakeProvider) {
	t.Helper()
	c, err := curriculum.Embedded()
	require.NoError(t, err)
	fake := llm.NewFakeProvider(replies...)
	return NewSelector(fake, c, DefaultConfig(), logger.Nop()), fake
}

func TestNext(t *testing.T) {
	sel, fake := newTestSelector(t, llm.JSONReply(map[string]any{
		"reasoning":  "  Let's strengthen Electricity with a few more problems!  ",
		"confidence": 0.5,
	}))
	st := Student{
		ID: 1, Name: "Asha", Grade: "Grade 10",
		Performance: []progress.Record{
			rec("Mathematics", "Real Numbers", 92, 3),
			rec("Mathematics", "Polynomials", 85, 2),
			rec("Physics", "Electricity", 68, 1),
		},
	}

	a, err := sel.Next(context.Background(), st, "Hindi")
	require.NoError(t, err)
	assert.Equal(t, ActionPractice, a.Type)
	assert.Equal(t, "Electricity", a.Chapter)
	assert.Equal(t, "Let's strengthen Electricity with a few more problems!", a.Reasoning)
	assert.Equal(t, 0.9, a.Confidence, "clamped into the tier band")
	assert.Empty(t, a.Skill)

	req := fake.Requests()[0]
	assert.Same(t, ExplanationSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, `"Electricity"`)
	assert.Contains(t, req.Messages[0].Content, "Hindi")
	assert.Contains(t, req.Messages[0].Content, "between 0.9 and 1.0")
}

func TestNext_CognitiveSkill(t *testing.T) {
	sel, _ := newTestSelector(t, llm.JSONReply(map[string]any{
		"reasoning":  "Time for a fun brain teaser!",
		"confidence": 0.75,
		"skill":      "Pattern Recognition",
	}))

	a, err := sel.Next(context.Background(), Student{Name: "Ravi", Grade: "Grade 10"}, "English")
	require.NoError(t, err)
	assert.Equal(t, ActionIQExercise, a.Type)
	assert.Equal(t, "Pattern Recognition", a.Skill)
	assert.Equal(t, 0.75, a.Confidence)
}

func TestNext_FailuresSurface(t *testing.T) {
	sel, _ := newTestSelector(t,
		llm.Reply{Err: &llm.Error{Kind: llm.KindQuota}},
		llm.JSONReply(map[string]any{"reasoning": " ", "confidence": 0.9}),
	)
	st := Student{Name: "Meera", Grade: "Grade 10"}

	_, err := sel.Next(context.Background(), st, "English")
	assert.ErrorIs(t, err, ErrPathGenerationFailed)
	assert.True(t, llm.IsKind(err, llm.KindQuota))

	_, err = sel.Next(context.Background(), st, "English")
	assert.ErrorIs(t, err, ErrPathGenerationFailed)
}
