package steamclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStats(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	assert.Zero(t, client.CacheStats().Size)
	assert.Zero(t, client.CacheStats().HitRate)

	// One miss then one hit on the details cache; the catalog cache has no
	// lookups yet, so the combined rate is the details rate weighted by its
	// single entry.
	_, err := client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	_, err = client.GetAppDetails(ctx, "620")
	require.NoError(t, err)

	stats := client.CacheStats()
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestCacheStatsCombinesBothCaches(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	// Catalog: one miss (initial fetch), then one hit per extra search.
	_, _, err := client.SearchApp(ctx, "portal 2")
	require.NoError(t, err)
	_, _, err = client.SearchApp(ctx, "grand theft auto v")
	require.NoError(t, err)

	stats := client.CacheStats()
	// One catalog snapshot plus two cached details records (the adult
	// probes). Catalog rate 1/2 weighted by 1 entry, details rate 0 weighted
	// by 2 entries.
	assert.Equal(t, 3, stats.Size)
	assert.InDelta(t, 1.0/6.0, stats.HitRate, 1e-9)
}

func TestClearCacheResetsStats(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	_, err := client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	_, err = client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	require.NotZero(t, client.CacheStats().Size)

	client.ClearCache()

	stats := client.CacheStats()
	assert.Zero(t, stats.Size)
	assert.Zero(t, stats.HitRate)
}
