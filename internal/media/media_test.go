package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

var png = []byte("\x89PNG\r\n\x1a\nfake")

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T, imager ImageGenerator) (*Service, *[]time.Duration) {
	t.Helper()
	var waits []time.Duration
	svc := NewService(imager, openTestStore(t).Documents(), logger.Nop(), WithSleep(func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}))
	svc.jitter = func() time.Duration { return 0 }
	return svc, &waits
}

func TestDiagram_GeneratesOnceThenServesStored(t *testing.T) {
	ctx := context.Background()
	fake := &FakeImager{Image: png}
	svc, _ := newTestService(t, fake)

	img, err := svc.Diagram(ctx, "A series circuit with a cell and two bulbs", "Physics")
	require.NoError(t, err)
	assert.Equal(t, png, img)

	img, err = svc.Diagram(ctx, "  A series circuit with a cell and two bulbs ", "Physics")
	require.NoError(t, err)
	assert.Equal(t, png, img)
	assert.Equal(t, 1, fake.Calls)

	assert.Contains(t, fake.Prompts[0], "science textbook")
	assert.Contains(t, fake.Prompts[0], "no words")
}

func TestDiagram_RetriesRateLimitWithBackoff(t *testing.T) {
	rl := &llm.Error{Kind: llm.KindRateLimited}
	fake := &FakeImager{Errors: []error{rl, rl}, Image: png}
	svc, waits := newTestService(t, fake)

	img, err := svc.Diagram(context.Background(), "Water cycle", "Geography")
	require.NoError(t, err)
	assert.Equal(t, png, img)
	assert.Equal(t, 3, fake.Calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestDiagram_GivesUpAfterThreeAttempts(t *testing.T) {
	rl := &llm.Error{Kind: llm.KindRateLimited}
	fake := &FakeImager{Errors: []error{rl, rl, rl, rl}, Image: png}
	svc, waits := newTestService(t, fake)

	_, err := svc.Diagram(context.Background(), "Water cycle", "Geography")
	assert.ErrorIs(t, err, ErrImageFailed)
	assert.Equal(t, 3, fake.Calls)
	assert.Len(t, *waits, 2)
}

func TestDiagram_QuotaFailsFast(t *testing.T) {
	for name, err := range map[string]error{
		"typed":   &llm.Error{Kind: llm.KindQuota},
		"message": errors.New("Quota exceeded for imagen requests"),
	} {
		t.Run(name, func(t *testing.T) {
			fake := &FakeImager{Errors: []error{err}, Image: png}
			svc, waits := newTestService(t, fake)

			_, got := svc.Diagram(context.Background(), "Cell", "Biology")
			assert.ErrorIs(t, got, ErrQuotaExceeded)
			assert.Equal(t, 1, fake.Calls)
			assert.Empty(t, *waits)
		})
	}
}

func TestDiagram_OtherErrorsAreNotRetried(t *testing.T) {
	fake := &FakeImager{Errors: []error{&llm.Error{Kind: llm.KindUnavailable}}, Image: png}
	svc, _ := newTestService(t, fake)

	_, err := svc.Diagram(context.Background(), "Cell", "Biology")
	assert.ErrorIs(t, err, ErrImageFailed)
	assert.Equal(t, 1, fake.Calls)

	// Nothing was stored, so the next request tries again.
	img, err := svc.Diagram(context.Background(), "Cell", "Biology")
	require.NoError(t, err)
	assert.Equal(t, png, img)
}

func TestConceptMap(t *testing.T) {
	ctx := context.Background()
	fake := &FakeImager{Errors: []error{&llm.Error{Kind: llm.KindRateLimited}}, Image: png}
	svc, waits := newTestService(t, fake)

	_, err := svc.ConceptMap(ctx, "Photosynthesis inputs and outputs")
	assert.ErrorIs(t, err, ErrImageFailed)
	assert.Empty(t, *waits)

	img, err := svc.ConceptMap(ctx, "Photosynthesis inputs and outputs")
	require.NoError(t, err)
	assert.Equal(t, png, img)
	assert.Contains(t, fake.Prompts[1], "concept map")

	// Diagrams and concept maps live apart.
	_, err = svc.Diagram(ctx, "Photosynthesis inputs and outputs", "Biology")
	require.NoError(t, err)
	assert.Equal(t, 3, fake.Calls)
}

func TestStyleCue(t *testing.T) {
	tests := map[string]string{
		"Computer Science": "digital illustration",
		"Physics":          "science textbook",
		"Mathematics":      "geometric",
		"History":          "timeline",
		"English":          "cartoonish",
	}
	for subject, want := range tests {
		assert.Contains(t, styleCue(subject), want, subject)
	}
}
