package steamclient

import "github.com/Xmerr/steam-client/models"

// CacheStats merges the catalog and details cache statistics into one view.
// The combined hit rate weights each cache's rate by its current entry count,
// which approximates but does not equal the true lookup-weighted rate; treat
// it as diagnostic, not authoritative.
func (c *Client) CacheStats() models.CacheStats {
	catalog := c.catalogCache.Stats()
	details := c.detailsCache.Stats()

	size := catalog.Size + details.Size
	if size == 0 {
		return models.CacheStats{}
	}
	weighted := catalog.HitRate*float64(catalog.Size) + details.HitRate*float64(details.Size)
	return models.CacheStats{
		Size:    size,
		HitRate: weighted / float64(size),
	}
}
