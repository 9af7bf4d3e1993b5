package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	cache, err := OpenInMemory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func rankedList() []core.Result {
	return []core.Result{
		{ID: "item-1", Score: 0.033, Relevance: 8.5, Metadata: core.Metadata{"name": "Pad Thai", "price": 12.5}},
		{ID: "item-2", Score: 0.016, Relevance: 6.0, Metadata: core.Metadata{"name": "Green Curry", "price": 11.0}},
	}
}

func TestCache_PutGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "sess-1", "thai noodles", rankedList()))

	got, found, err := cache.Get(ctx, "sess-1", "thai noodles")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].ID)
	assert.Equal(t, 8.5, got[0].Relevance)
	assert.Equal(t, "Pad Thai", got[0].Metadata.String("name"))

	price, ok := got[0].Metadata.Price()
	require.True(t, ok)
	assert.Equal(t, 12.5, price)
}

func TestCache_Miss(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "sess-1", "never stored")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := newTestCache(t, WithTTL(50*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "sess-1", "thai noodles", rankedList()))

	_, found, err := cache.Get(ctx, "sess-1", "thai noodles")
	require.NoError(t, err)
	require.True(t, found)

	time.Sleep(100 * time.Millisecond)

	_, found, err = cache.Get(ctx, "sess-1", "thai noodles")
	require.NoError(t, err)
	assert.False(t, found, "entry must expire after its TTL")
}

func TestCache_Invalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "sess-1", "thai noodles", rankedList()))
	require.NoError(t, cache.Put(ctx, "sess-1", "pizza", rankedList()))
	require.NoError(t, cache.Put(ctx, "sess-2", "thai noodles", rankedList()))

	require.NoError(t, cache.Invalidate(ctx, "sess-1"))

	_, found, err := cache.Get(ctx, "sess-1", "thai noodles")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cache.Get(ctx, "sess-1", "pizza")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cache.Get(ctx, "sess-2", "thai noodles")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCache_EmptySessionID(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	assert.ErrorIs(t, cache.Put(ctx, "", "q", nil), session.ErrEmptySessionID)
	_, _, err := cache.Get(ctx, "", "q")
	assert.ErrorIs(t, err, session.ErrEmptySessionID)
	assert.ErrorIs(t, cache.Invalidate(ctx, ""), session.ErrEmptySessionID)
}

func TestCache_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions")
	cache, err := Open(path)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "sess-1", "thai noodles", rankedList()))

	_, found, err := cache.Get(ctx, "sess-1", "thai noodles")
	require.NoError(t, err)
	assert.True(t, found)
}
