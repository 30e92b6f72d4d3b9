package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahzada-shah/flow-studios/pkg/kv"
)

func TestEmbeddedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewEmbedded(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Set(ctx, kv.WishlistKey("s"), `{"products":[]}`, time.Hour))
	got, err := store.Get(ctx, kv.WishlistKey("s"))
	require.NoError(t, err)
	assert.Equal(t, `{"products":[]}`, got)

	ok, err := store.SetNX(ctx, kv.WishlistKey("s"), "other", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "SetNX keeps the existing value")

	require.NoError(t, store.Del(ctx, kv.WishlistKey("s")))
	_, err = store.Get(ctx, kv.WishlistKey("s"))
	assert.True(t, errors.Is(err, kv.ErrNotFound))
}

func TestEmbeddedCounterWindow(t *testing.T) {
	ctx := context.Background()
	store, err := NewEmbedded(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	for want := int64(1); want <= 3; want++ {
		got, err := store.IncrWithTTL(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, time.Minute, store.server.TTL("counter"), "the window is fixed by the first increment")

	store.server.FastForward(time.Minute)
	got, err := store.IncrWithTTL(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestEmbeddedCloseStopsServer(t *testing.T) {
	ctx := context.Background()
	store, err := NewEmbedded(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Error(t, store.Ping(ctx))
}
