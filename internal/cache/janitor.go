package cache

import (
	"time"

	"go.uber.org/zap"
)

// StartJanitor launches a background sweep that frees expired entries every
// interval. Expired entries are already invisible to Get and Has; the sweep
// just reclaims their slots. No-op when interval is not positive or a sweeper
// is already running.
func (c *Cache[K, V]) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.sweep(interval, stop)
}

func (c *Cache[K, V]) sweep(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			removed := c.removeExpired(c.now())
			c.mu.Unlock()
			if removed > 0 {
				c.logger.Debug("swept expired cache entries", zap.Int("removed", removed))
			}
		case <-stop:
			return
		}
	}
}

// Close stops the background sweeper if one is running. The cache itself
// remains usable.
func (c *Cache[K, V]) Close() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}
