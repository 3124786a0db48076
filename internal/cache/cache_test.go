package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	buf := []byte("hello")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'j'

	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", string(v), "stored value must not alias the caller's slice")

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = m.Set(ctx, key, []byte{byte(i)})
			_, _, _ = m.Get(ctx, key)
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, m.Len())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}
func (brokenCache) Set(context.Context, string, []byte) error { return errors.New("down") }
func (brokenCache) Delete(context.Context, string) error      { return errors.New("down") }

func TestTiered_BackfillsFasterLayers(t *testing.T) {
	ctx := context.Background()
	fast, slow := NewMemory(), NewMemory()
	require.NoError(t, slow.Set(ctx, "k", []byte("v")))

	tiered := NewTiered(fast, slow)
	v, ok, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(v))

	v, ok, _ = fast.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestTiered_BrokenLayerIsAMiss(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	tiered := NewTiered(brokenCache{}, mem)

	_, ok, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	err = tiered.Set(ctx, "k", []byte("v"))
	assert.Error(t, err)
	v, ok, _ := mem.Get(ctx, "k")
	assert.True(t, ok, "healthy layers are still written")
	assert.Equal(t, "v", string(v))
}

// TestRedis runs against a real server when ALFANUMRIK_TEST_REDIS_URL is set.
func TestRedis(t *testing.T) {
	url := os.Getenv("ALFANUMRIK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ALFANUMRIK_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := DialRedis(ctx, url, "alfanumrik-test:")
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(ctx, "k", []byte("v")))
	v, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))

	require.NoError(t, r.Delete(ctx, "k"))
	_, ok, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDialRedis_BadURL(t *testing.T) {
	_, err := DialRedis(context.Background(), "not-a-url", "")
	assert.Error(t, err)
}
