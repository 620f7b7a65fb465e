package steamclient

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// The full app list runs to hundreds of thousands of rows; give the warmup
// fetch room to finish on slow links.
const catalogWarmupTimeout = 2 * time.Minute

// warmCatalog primes the catalog cache in the background. Best effort: a
// failed warmup only costs the first search the download it would have paid
// anyway.
func (c *Client) warmCatalog() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), catalogWarmupTimeout)
		defer cancel()
		if err := c.matcher.WarmCatalog(ctx); err != nil {
			c.logger.Warn("catalog warmup failed", zap.Error(err))
			return
		}
		c.logger.Debug("catalog warmed")
	}()
}
