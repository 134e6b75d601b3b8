package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache(0)
	defer c.Close()
	c.now = func() time.Time { return clock }

	stored := &Result{Metadata: Metadata{SimulationID: "a"}}
	require.NoError(t, c.Set(ctx, "short", stored, 30*time.Minute))
	require.NoError(t, c.Set(ctx, "forever", stored, 0))

	got, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, stored, got)

	clock = clock.Add(31 * time.Minute)

	_, ok, err = c.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok, "entry past its ttl must miss")

	_, ok, _ = c.Get(ctx, "forever")
	require.True(t, ok)

	require.Equal(t, 1, c.removeExpired())
	require.Len(t, c.entries, 1)
}

func TestMemoryCachePurgeAndClose(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour)

	require.NoError(t, c.Set(ctx, "a", &Result{}, time.Minute))
	require.NoError(t, c.Set(ctx, "b", &Result{}, time.Minute))

	removed, err := c.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	_, ok, _ := c.Get(ctx, "a")
	require.False(t, ok)

	c.Close()
	c.Close()
}
