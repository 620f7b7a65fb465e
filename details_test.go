package steamclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xmerr/steam-client/steamapi"
)

func TestGetAppDetailsCacheFirst(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	first, err := client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	second, err := client.GetAppDetails(ctx, "620")
	require.NoError(t, err)

	assert.Same(t, first, second, "cached record served as-is")
	assert.Equal(t, 1, remote.detailCallCount("620"))
}

func TestGetAppDetailsUnknownApp(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)

	_, err := client.GetAppDetails(context.Background(), "424242")
	require.Error(t, err)
	assert.True(t, steamapi.IsNotFound(err))
}

func TestDetailsCacheEvictsLeastRecentlyUsed(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote, WithCacheSize(1))
	ctx := context.Background()

	_, err := client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	_, err = client.GetAppDetails(ctx, "1091500") // capacity 1: evicts 620
	require.NoError(t, err)

	_, err = client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	assert.Equal(t, 2, remote.detailCallCount("620"), "evicted record must be refetched")
	assert.Equal(t, 1, remote.detailCallCount("1091500"))
}

func TestSearchProbePopulatesDetailsCache(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	_, found, err := client.SearchApp(ctx, "portal 2")
	require.NoError(t, err)
	require.True(t, found)

	_, err = client.GetAppDetails(ctx, "620")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.detailCallCount("620"), "adult probe and lookup share the cache")
}
