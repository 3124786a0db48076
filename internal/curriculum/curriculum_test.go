package curriculum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

// memDocs is an in-memory DocumentRepo.
type memDocs struct {
	data    map[string][]byte
	failGet bool
}

func newMemDocs() *memDocs { return &memDocs{data: map[string][]byte{}} }

func (m *memDocs) GetDocument(_ context.Context, p store.Partition, key string) ([]byte, error) {
	if m.failGet {
		return nil, store.ErrStorageUnavailable
	}
	v, ok := m.data[string(p)+"/"+key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memDocs) PutDocument(_ context.Context, p store.Partition, key string, value []byte) error {
	m.data[string(p)+"/"+key] = value
	return nil
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	g, ok := c.Grade("grade 10")
	require.True(t, ok)
	phy, ok := g.Subject("physics")
	require.True(t, ok)
	assert.Contains(t, phy.ChapterTitles(), "Electricity")

	maths, ok := g.Subject("Mathematics")
	require.True(t, ok)
	assert.Equal(t, "Real Numbers", maths.ChapterTitles()[0])

	_, ok = c.Grade("Grade 42")
	assert.False(t, ok)
}

func TestLoad_WritesThenReadsCache(t *testing.T) {
	ctx := context.Background()
	docs := newMemDocs()

	c, err := Load(ctx, docs, logger.Nop())
	require.NoError(t, err)
	assert.Contains(t, docs.data, "cache/curriculum_data")
	assert.Equal(t, `"`+c.Version+`"`, string(docs.data["cache/curriculum_version"]))

	// Tamper with the cached copy to prove the second load reads it.
	require.NoError(t, store.PutJSON(ctx, docs, store.PartitionCache, dataKey, Catalog{Version: c.Version, Grades: []Grade{{Level: "Cached"}}}))
	again, err := Load(ctx, docs, logger.Nop())
	require.NoError(t, err)
	_, ok := again.Grade("Cached")
	assert.True(t, ok)
}

func TestLoad_StaleVersionRefreshed(t *testing.T) {
	ctx := context.Background()
	docs := newMemDocs()
	require.NoError(t, store.PutJSON(ctx, docs, store.PartitionCache, versionKey, "0.1"))
	require.NoError(t, store.PutJSON(ctx, docs, store.PartitionCache, dataKey, Catalog{Version: "0.1"}))

	c, err := Load(ctx, docs, logger.Nop())
	require.NoError(t, err)
	_, ok := c.Grade("Grade 10")
	assert.True(t, ok)
	assert.Equal(t, `"`+c.Version+`"`, string(docs.data["cache/curriculum_version"]))
}

func TestLoad_StorageFailureFallsBackToEmbedded(t *testing.T) {
	docs := newMemDocs()
	docs.failGet = true

	c, err := Load(context.Background(), docs, logger.Nop())
	require.NoError(t, err)
	_, ok := c.Grade("Grade 10")
	assert.True(t, ok)
}
