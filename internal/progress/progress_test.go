package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

// clock is a settable fake clock.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) nextDay(n int) { c.t = c.t.AddDate(0, 0, n) }

func newTestTracker(t *testing.T) (*Tracker, *clock) {
	c := &clock{t: time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)}
	return NewTracker(openTestStore(t), logger.Nop(), WithClock(c.now)), c
}

func quiz(subject, chapter string, score int) Record {
	return Record{Subject: subject, Chapter: chapter, Score: score, Kind: KindQuiz}
}

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		prev        *Streak
		want        Streak
		wantChanged bool
	}{
		{"first ever", nil, Streak{1, "2025-03-10"}, true},
		{"yesterday extends", &Streak{4, "2025-03-09"}, Streak{5, "2025-03-10"}, true},
		{"today unchanged", &Streak{4, "2025-03-10"}, Streak{4, "2025-03-10"}, false},
		{"two days ago resets", &Streak{9, "2025-03-08"}, Streak{1, "2025-03-10"}, true},
		{"future date left alone", &Streak{2, "2025-03-12"}, Streak{2, "2025-03-12"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := AdvanceStreak(tt.prev, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestAdvanceStreak_MonthBoundary(t *testing.T) {
	got, _ := AdvanceStreak(&Streak{3, "2024-02-29"}, time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC))
	assert.Equal(t, Streak{4, "2024-03-01"}, got)
}

func TestDecayStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DecayStreak(Streak{3, "2025-03-10"}, now).Count)
	assert.Equal(t, 3, DecayStreak(Streak{3, "2025-03-09"}, now).Count)
	decayed := DecayStreak(Streak{3, "2025-03-08"}, now)
	assert.Equal(t, 0, decayed.Count)
	assert.Equal(t, Date("2025-03-08"), decayed.LastDate)
}

func TestRecordOutcome_ConsecutiveDaysBuildStreak(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t)

	const days = 6
	for i := range days {
		// Two outcomes on the same day count once.
		_, err := tr.RecordOutcome(ctx, 7, quiz("Mathematics", "Real Numbers", 80))
		require.NoError(t, err)
		_, err = tr.RecordOutcome(ctx, 7, quiz("Mathematics", "Polynomials", 90))
		require.NoError(t, err)

		s, err := tr.Streak(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, i+1, s.Count)
		c.nextDay(1)
	}

	// Skip a day: the read view decays to zero without touching storage.
	c.nextDay(1)
	s, err := tr.Streak(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count)

	_, err = tr.RecordOutcome(ctx, 7, quiz("Mathematics", "Triangles", 75))
	require.NoError(t, err)
	s, err = tr.Streak(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
}

func TestRecordOutcome_PersistsRecords(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t)

	first, err := tr.RecordOutcome(ctx, 1, quiz("Physics", "Electricity", 68))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, c.t, first.CompletedAt)

	c.t = c.t.Add(time.Hour)
	_, err = tr.RecordOutcome(ctx, 1, Record{Subject: "Cognitive", Score: 100, Kind: KindIQ, Context: "Pattern Recognition"})
	require.NoError(t, err)
	_, err = tr.RecordOutcome(ctx, 2, quiz("Mathematics", "Real Numbers", 92))
	require.NoError(t, err)

	recs, err := tr.Records(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	SortByRecent(recs)
	assert.Equal(t, KindIQ, recs[0].Kind)
	assert.Equal(t, "Electricity", recs[1].Chapter)
	assert.Equal(t, int64(1), recs[1].StudentID)

	none, err := tr.Streak(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRecordOutcome_Validation(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)

	bad := []Record{
		quiz("Mathematics", "Real Numbers", 101),
		quiz("Mathematics", "Real Numbers", -1),
		quiz("", "Real Numbers", 50),
		quiz("Mathematics", "", 50),
		{Subject: "Mathematics", Chapter: "x", Score: 10, Kind: "essay"},
	}
	for _, r := range bad {
		_, err := tr.RecordOutcome(ctx, 1, r)
		assert.True(t, errors.Is(err, ErrInvalidRecord), "record %+v: %v", r, err)
	}

	recs, err := tr.Records(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, recs)

	s, err := tr.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, s, "invalid records must not start a streak")
}

func TestRecord_DefaultKind(t *testing.T) {
	r := Record{Subject: " Mathematics ", Chapter: "Real Numbers", Score: 50}
	require.NoError(t, r.Validate())
	assert.Equal(t, KindQuiz, r.Kind)
	assert.Equal(t, "Mathematics", r.Subject)
}

func TestChapterProgress(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)
	key := ChapterKey{StudentID: 3, Grade: "Grade 10", Subject: "Physics", Chapter: "Electricity", Language: "English"}
	assert.Equal(t, "progress/3/Grade 10/Physics/Electricity/English", key.String())
	other := ChapterKey{StudentID: 3, Grade: "Grade 10", Subject: "Physics-Electricity", Chapter: "", Language: "English"}
	assert.NotEqual(t, key.String(), other.String())

	p, err := tr.ChapterProgress(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = tr.SetConceptStatus(ctx, key, "Ohm's Law", StatusInProgress)
	require.NoError(t, err)
	p, err = tr.SetConceptStatus(ctx, key, "Resistance", StatusMastered)
	require.NoError(t, err)
	assert.Equal(t, ChapterProgress{"Ohm's Law": StatusInProgress, "Resistance": StatusMastered}, p)
	assert.Equal(t, 1, p.Mastered())

	other = key
	other.Language = "Hindi"
	p, err = tr.ChapterProgress(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, p, "progress is kept per language")

	_, err = tr.SetConceptStatus(ctx, key, "x", "done")
	assert.Error(t, err)
}

func TestWellbeingFlag(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)

	ok, err := tr.WellbeingAssigned(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tr.SetWellbeingAssigned(ctx, 5, true))
	ok, err = tr.WellbeingAssigned(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}
