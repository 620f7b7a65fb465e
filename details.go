package steamclient

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Xmerr/steam-client/models"
)

// GetAppDetails returns the storefront record for an app id: from cache while
// fresh, otherwise fetched and cached. Unknown apps fail with a not-found
// error.
func (c *Client) GetAppDetails(ctx context.Context, appID string) (*models.AppDetails, error) {
	ctx, span := c.tracer.Start(ctx, "steamclient.GetAppDetails")
	defer span.End()
	span.SetAttributes(attribute.String("app_id", appID))

	details, err := c.getDetails(ctx, appID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return details, nil
}

// getDetails is the cache-first details path shared by lookups, search
// filtering, and enrichment. Concurrent misses on the same app share one
// upstream fetch.
func (c *Client) getDetails(ctx context.Context, appID string) (*models.AppDetails, error) {
	if details, ok := c.detailsCache.Get(appID); ok {
		return details, nil
	}
	v, err, _ := c.flights.Do(appID, func() (interface{}, error) {
		details, err := c.remote.FetchAppDetails(ctx, appID)
		if err != nil {
			return nil, err
		}
		c.detailsCache.Set(appID, details)
		return details, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AppDetails), nil
}
