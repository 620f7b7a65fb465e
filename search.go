package steamclient

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Xmerr/steam-client/models"
)

// SearchOption adjusts a single search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	threshold    float64
	hasThreshold bool
	includeAdult bool
}

// WithMatchThreshold overrides the configured fuzzy threshold for this call.
func WithMatchThreshold(threshold float64) SearchOption {
	return func(o *searchOptions) {
		o.threshold = threshold
		o.hasThreshold = true
	}
}

// WithAdultContent keeps adult-rated results, which are filtered out by
// default.
func WithAdultContent() SearchOption {
	return func(o *searchOptions) {
		o.includeAdult = true
	}
}

// SearchApp resolves a free-text title to the closest catalog entry. The
// returned bool reports whether anything cleared the threshold; adult-rated
// matches are dropped unless WithAdultContent is given. Dropping requires a
// details probe, which fails open: a match is never suppressed because its
// details fetch broke.
func (c *Client) SearchApp(ctx context.Context, title string, opts ...SearchOption) (models.App, bool, error) {
	ctx, span := c.tracer.Start(ctx, "steamclient.SearchApp")
	defer span.End()
	span.SetAttributes(attribute.String("query", title))

	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}
	threshold := c.cfg.Match.FuzzyThreshold
	if o.hasThreshold {
		threshold = o.threshold
	}

	app, found, err := c.matcher.BestMatch(ctx, title, threshold)
	if err != nil {
		span.RecordError(err)
		return models.App{}, false, err
	}
	if !found {
		return models.App{}, false, nil
	}
	if !o.includeAdult && c.isAdult(ctx, app.ID) {
		c.logger.Debug("dropped adult-rated match",
			zap.String("app_id", app.ID),
			zap.String("query", title))
		return models.App{}, false, nil
	}

	span.SetAttributes(
		attribute.String("app_id", app.ID),
		attribute.Float64("match_score", app.MatchScore),
	)
	return app, true, nil
}

// SearchApps returns up to limit candidates within the configured threshold,
// best match first.
func (c *Client) SearchApps(ctx context.Context, title string, limit int) ([]models.App, error) {
	ctx, span := c.tracer.Start(ctx, "steamclient.SearchApps")
	defer span.End()
	span.SetAttributes(attribute.String("query", title), attribute.Int("limit", limit))

	apps, err := c.matcher.TopMatches(ctx, title, limit, c.cfg.Match.FuzzyThreshold)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("matches", len(apps)))
	return apps, nil
}

// isAdult classifies the app behind appID, fetching its details through the
// cache. Failures count as "not adult" so unrelated search results are not
// blocked by a broken details fetch.
func (c *Client) isAdult(ctx context.Context, appID string) bool {
	details, err := c.getDetails(ctx, appID)
	if err != nil {
		c.logger.Warn("adult-content probe failed, keeping result",
			zap.String("app_id", appID),
			zap.Error(err))
		return false
	}
	return c.classify(details)
}
