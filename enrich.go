package steamclient

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Xmerr/steam-client/models"
	"github.com/Xmerr/steam-client/steamapi"
)

// Enrich resolves a partially identified game and projects its storefront
// details into a presentation record. When the request carries no app id, the
// title is resolved with adult filtering disabled: enrichment reports adult
// content, it never rejects it. Fails with a not-found error when nothing
// matches.
func (c *Client) Enrich(ctx context.Context, req models.EnrichRequest) (*models.EnrichedGame, error) {
	ctx, span := c.tracer.Start(ctx, "steamclient.Enrich")
	defer span.End()
	span.SetAttributes(attribute.String("app_id", req.AppID), attribute.String("title", req.Title))

	appID := req.AppID
	matchScore := 1.0
	if appID == "" {
		app, found, err := c.SearchApp(ctx, req.Title, WithAdultContent())
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if !found {
			err := steamapi.NotFound(fmt.Sprintf("game matching %q", req.Title))
			span.RecordError(err)
			return nil, err
		}
		appID = app.ID
		matchScore = app.MatchScore
	}

	details, err := c.getDetails(ctx, appID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return models.NewEnrichedGame(details, matchScore), nil
}
