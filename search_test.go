package steamclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xmerr/steam-client/models"
)

func TestSearchAppFiltersAdultByDefault(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	// "Wild Life" carries requiredAge 18 and is the only match for the query.
	_, found, err := client.SearchApp(ctx, "Wild Life")
	require.NoError(t, err)
	assert.False(t, found, "adult match must be dropped by default")

	app, found, err := client.SearchApp(ctx, "Wild Life", WithAdultContent())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "3840", app.ID)
}

func TestSearchAppAdultProbeFailsOpen(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	remote.setDetailsErr(errors.New("storefront down"))

	app, found, err := client.SearchApp(context.Background(), "portal 2")
	require.NoError(t, err)
	require.True(t, found, "broken details probe must not suppress the match")
	assert.Equal(t, "620", app.ID)
}

func TestSearchAppThresholdOverride(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)
	ctx := context.Background()

	// One edit away from "cyberpunk 2077": inside the default threshold,
	// outside a strict per-call override.
	_, found, err := client.SearchApp(ctx, "Cyberpunk 2076")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = client.SearchApp(ctx, "Cyberpunk 2076", WithMatchThreshold(0.05))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchAppNoMatchSkipsDetailsProbe(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)

	_, found, err := client.SearchApp(context.Background(), "qqqqqqqqqqqqqq")
	require.NoError(t, err)
	assert.False(t, found)
	for _, app := range remote.apps {
		assert.Zero(t, remote.detailCallCount(app.ID))
	}
}

func TestSearchAppCustomClassifier(t *testing.T) {
	remote := newFakeRemote()
	// Treat everything with a price as adult; Portal 2 has one.
	client := newTestFacade(t, remote, WithAdultClassifier(func(d *models.AppDetails) bool {
		return d.Price != nil
	}))

	_, found, err := client.SearchApp(context.Background(), "portal 2")
	require.NoError(t, err)
	assert.False(t, found)

	app, found, err := client.SearchApp(context.Background(), "grand theft auto v")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "271590", app.ID)
}

func TestSearchApps(t *testing.T) {
	remote := newFakeRemote()
	remote.apps = []models.App{
		{ID: "400", Name: "Portal"},
		{ID: "620", Name: "Portal 2"},
		{ID: "621", Name: "Portal 3"},
		{ID: "70", Name: "Half-Life"},
	}
	client := newTestFacade(t, remote)

	apps, err := client.SearchApps(context.Background(), "portal", 2)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "400", apps[0].ID)
	assert.InDelta(t, 1.0, apps[0].MatchScore, 1e-9)
	assert.Equal(t, "620", apps[1].ID)
	assert.Greater(t, apps[0].MatchScore, apps[1].MatchScore)
}

func TestSearchAppsNoAdultFiltering(t *testing.T) {
	remote := newFakeRemote()
	client := newTestFacade(t, remote)

	apps, err := client.SearchApps(context.Background(), "Wild Life", 5)
	require.NoError(t, err)
	require.NotEmpty(t, apps)
	assert.Equal(t, "3840", apps[0].ID)
	assert.Zero(t, remote.detailCallCount("3840"), "multi-search does not probe details")
}
