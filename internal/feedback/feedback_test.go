package feedback

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s.Collections(), logger.Nop())
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rec, err := svc.Submit(ctx, Record{
		Role:      RoleTeacher,
		StudentID: 1,
		ContentID: " report-teacher-1-en ",
		Rating:    RatingUp,
		Comment:   "Very useful",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "report-teacher-1-en", rec.ContentID)
	assert.False(t, rec.Timestamp.IsZero())

	got, err := svc.ForContent(ctx, "report-teacher-1-en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, "Very useful", got[0].Comment)
}

func TestSubmit_Validation(t *testing.T) {
	svc := newTestService(t)
	valid := Record{Role: RoleParent, StudentID: 1, ContentID: "report-parent-1-en", Rating: RatingDown}

	tests := []struct {
		name string
		edit func(*Record)
	}{
		{"unknown role", func(r *Record) { r.Role = "student" }},
		{"unknown rating", func(r *Record) { r.Rating = "meh" }},
		{"no content", func(r *Record) { r.ContentID = "  " }},
		{"no student", func(r *Record) { r.StudentID = 0 }},
		{"long comment", func(r *Record) { r.Comment = strings.Repeat("x", 2001) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.edit(&r)
			_, err := svc.Submit(context.Background(), r)
			assert.ErrorIs(t, err, ErrInvalidFeedback)
		})
	}

	_, err := svc.Submit(context.Background(), valid)
	assert.NoError(t, err)
}

func TestForContentAndTally(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, r := range []Record{
		{Role: RoleTeacher, StudentID: 1, ContentID: "report-teacher-1-en", Rating: RatingUp},
		{Role: RoleTeacher, StudentID: 1, ContentID: "report-teacher-1-en", Rating: RatingDown},
		{Role: RoleParent, StudentID: 1, ContentID: "report-parent-1-en", Rating: RatingUp},
		{Role: RoleTeacher, StudentID: 2, ContentID: "report-teacher-2-en", Rating: RatingUp},
	} {
		_, err := svc.Submit(ctx, r)
		require.NoError(t, err)
	}

	got, err := svc.ForContent(ctx, "report-teacher-1-en")
	require.NoError(t, err)
	up, down := Tally(got)
	assert.Equal(t, 1, up)
	assert.Equal(t, 1, down)

	byStudent, err := svc.ForStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byStudent, 3)

	none, err := svc.ForContent(ctx, "report-teacher-9-en")
	require.NoError(t, err)
	assert.Empty(t, none)
}
