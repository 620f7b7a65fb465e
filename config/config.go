package config

import (
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Xmerr/steam-client/models"
)

// Defaults applied by NewConfig. The rate limit mirrors Steam's published
// budget of 200 requests per 5 minutes.
const (
	DefaultCacheTTL          = 30 * time.Minute
	DefaultCacheSize         = 256
	DefaultCleanupInterval   = 10 * time.Minute
	DefaultRateLimitCapacity = 200
	DefaultRateLimitWindow   = 5 * time.Minute
	DefaultFuzzyThreshold    = 0.4
)

// Config is the configuration for the Steam client.
type Config struct {
	APIKey string // Steam Web API key; optional for the public endpoints

	Cache     CacheConfig
	RateLimit RateLimitConfig
	Match     MatchConfig
	Breaker   gobreaker.Settings // circuit breaker guarding upstream calls

	// AdultClassifier decides whether a details record counts as adult
	// content. Nil means the built-in classification.
	AdultClassifier func(*models.AppDetails) bool

	// WarmCatalog fetches the app list in the background at construction so
	// the first search does not pay for the full download.
	WarmCatalog bool

	Logger *zap.Logger
}

// CacheConfig sizes the details cache and its housekeeping.
type CacheConfig struct {
	TTL             time.Duration // how long a details record stays fresh
	Size            int           // capacity in entries; LRU beyond this
	CleanupInterval time.Duration // background sweep period; 0 disables the sweeper
}

// RateLimitConfig shapes the token bucket gating outbound requests: Capacity
// tokens, refilled continuously over Window.
type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

// MatchConfig tunes fuzzy title resolution. FuzzyThreshold is the largest
// normalized edit distance a candidate may have, 0 (exact only) to 1 (anything).
type MatchConfig struct {
	FuzzyThreshold float64
}

func NewConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			TTL:             DefaultCacheTTL,
			Size:            DefaultCacheSize,
			CleanupInterval: DefaultCleanupInterval,
		},
		RateLimit: RateLimitConfig{
			Capacity: DefaultRateLimitCapacity,
			Window:   DefaultRateLimitWindow,
		},
		Match: MatchConfig{
			FuzzyThreshold: DefaultFuzzyThreshold,
		},
		Breaker: gobreaker.Settings{Name: "steam-api"},
		Logger:  zap.NewNop(),
	}
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.CleanupInterval < 0 {
		return fmt.Errorf("cleanup interval must not be negative, got %v", c.Cache.CleanupInterval)
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate limit capacity must be positive, got %d", c.RateLimit.Capacity)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %v", c.RateLimit.Window)
	}
	if c.Match.FuzzyThreshold < 0 || c.Match.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be within [0, 1], got %v", c.Match.FuzzyThreshold)
	}
	if c.Logger == nil {
		return fmt.Errorf("logger must not be nil")
	}
	return nil
}
