package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

const teacherText = `**Overall Summary:**
Asha is progressing steadily.
**Identified Strengths:**
- Mathematics: Real Numbers (92%)
**Areas for Improvement:**
- Physics: Electricity (68%)
`

var asha = Student{
	ID:    7,
	Name:  "Asha",
	Grade: "Grade 10",
	Performance: []progress.Record{
		{StudentID: 7, Subject: "Mathematics", Chapter: "Real Numbers", Score: 92, Kind: progress.KindQuiz,
			CompletedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{StudentID: 7, Subject: "Physics", Chapter: "Electricity", Score: 68, Kind: progress.KindExercise,
			CompletedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
	},
}

func newTestService(t *testing.T, replies ...llm.Reply) (*Service, *llm.FakeProvider, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	fake := llm.NewFakeProvider(replies...)
	return NewService(s.Documents(), fake, DefaultConfig(), logger.Nop()), fake, s
}

func TestReport_GeneratesThenServesStored(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newTestService(t, llm.JSONReply(teacherText))

	r, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
	require.NoError(t, err)
	assert.Equal(t, "report-teacher-7-en", r.ContentID)
	assert.False(t, r.WasCached)
	assert.Equal(t, strings.TrimSpace(teacherText), r.Text)

	again, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
	require.NoError(t, err)
	assert.True(t, again.WasCached)
	assert.Equal(t, r.Text, again.Text)
	assert.Equal(t, 1, fake.CallCount())

	req := fake.Requests()[0]
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "**Overall Summary:**")
	assert.Contains(t, req.Messages[0].Content, "Electricity")
	assert.Contains(t, req.Messages[0].Content, "must be in en")
}

func TestReport_KeyedByRoleAndLanguage(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newTestService(t,
		llm.JSONReply(teacherText),
		llm.JSONReply("**A Quick Note on Asha's Progress:**\nGreat effort!"),
		llm.JSONReply("**Overall Summary:**\nहिंदी"),
	)

	_, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
	require.NoError(t, err)
	parent, err := svc.Report(ctx, RoleParent, asha, "en", false)
	require.NoError(t, err)
	assert.False(t, parent.WasCached)
	assert.Contains(t, fake.Requests()[1].Messages[0].Content, "Where Asha is Shining")

	hi, err := svc.Report(ctx, RoleTeacher, asha, "hi", false)
	require.NoError(t, err)
	assert.False(t, hi.WasCached)
	assert.Equal(t, 3, fake.CallCount())
}

func TestReport_RefreshRegenerates(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newTestService(t, llm.JSONReply("**Overall Summary:**\nold"), llm.JSONReply("**Overall Summary:**\nnew"))

	_, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
	require.NoError(t, err)
	r, err := svc.Report(ctx, RoleTeacher, asha, "en", true)
	require.NoError(t, err)
	assert.Contains(t, r.Text, "new")

	stored, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
	require.NoError(t, err)
	assert.Contains(t, stored.Text, "new")
	assert.Equal(t, 2, fake.CallCount())
}

func TestReport_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("generation failure surfaces", func(t *testing.T) {
		svc, _, s := newTestService(t, llm.Reply{Err: &llm.Error{Kind: llm.KindUnavailable}})
		_, err := svc.Report(ctx, RoleParent, asha, "en", false)
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.True(t, llm.IsKind(err, llm.KindUnavailable))

		_, err = s.Documents().GetDocument(ctx, store.PartitionReports, ContentID(RoleParent, 7, "en"))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("blank output", func(t *testing.T) {
		svc, _, _ := newTestService(t, llm.JSONReply("   "))
		_, err := svc.Report(ctx, RoleTeacher, asha, "en", false)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("no performance", func(t *testing.T) {
		svc, fake, _ := newTestService(t)
		_, err := svc.Report(ctx, RoleTeacher, Student{ID: 8, Name: "Ravi"}, "en", false)
		assert.ErrorIs(t, err, ErrNoPerformance)
		assert.Zero(t, fake.CallCount())
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Report(ctx, Role("principal"), asha, "en", false)
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Parent ")
	require.NoError(t, err)
	assert.Equal(t, RoleParent, r)

	_, err = ParseRole("student")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestSections(t *testing.T) {
	got := Sections("Dear teacher,\n\n" + teacherText)
	require.Len(t, got, 4)
	assert.Equal(t, "", got[0].Heading)
	assert.Equal(t, []string{"Dear teacher,"}, got[0].Lines)
	assert.Equal(t, "Overall Summary", got[1].Heading)
	assert.Equal(t, "Identified Strengths", got[2].Heading)
	assert.Equal(t, []string{"- Mathematics: Real Numbers (92%)"}, got[2].Lines)
	assert.Equal(t, "Areas for Improvement", got[3].Heading)
}
