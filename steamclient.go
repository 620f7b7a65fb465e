// Package steamclient resolves free-text game titles against the Steam
// catalog and enriches them with storefront metadata. Lookups are cached
// in-process (one long-lived catalog snapshot, one bounded LRU of details
// records) and every upstream call is gated by a local token bucket.
package steamclient

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Xmerr/steam-client/config"
	"github.com/Xmerr/steam-client/internal/cache"
	"github.com/Xmerr/steam-client/internal/match"
	"github.com/Xmerr/steam-client/models"
	"github.com/Xmerr/steam-client/steamapi"
)

// RemoteClient is the boundary the client talks to Steam through. The default
// implementation is steamapi.Client; tests and bespoke transports plug in
// their own via NewWithRemote.
type RemoteClient interface {
	FetchCatalog(ctx context.Context) ([]models.App, error)
	FetchAppDetails(ctx context.Context, appID string) (*models.AppDetails, error)
	TryConsumeRateToken() bool
	RetryAfter() time.Time
}

// Option adjusts the configuration before the client is built.
type Option func(*config.Config) error

// WithAPIKey attaches a Steam Web API key to catalog requests.
func WithAPIKey(key string) Option {
	return func(cfg *config.Config) error {
		cfg.APIKey = key
		return nil
	}
}

// WithCacheTTL sets how long a details record stays fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *config.Config) error {
		cfg.Cache.TTL = ttl
		return nil
	}
}

// WithCacheSize bounds the details cache; least recently used entries are
// evicted beyond this.
func WithCacheSize(size int) Option {
	return func(cfg *config.Config) error {
		cfg.Cache.Size = size
		return nil
	}
}

// WithCleanupInterval sets the background sweep period for expired cache
// entries. Zero disables the sweeper; expired entries are then freed lazily.
func WithCleanupInterval(interval time.Duration) Option {
	return func(cfg *config.Config) error {
		cfg.Cache.CleanupInterval = interval
		return nil
	}
}

// WithRateLimit shapes the token bucket gating upstream calls: capacity
// requests per window.
func WithRateLimit(capacity int, window time.Duration) Option {
	return func(cfg *config.Config) error {
		cfg.RateLimit.Capacity = capacity
		cfg.RateLimit.Window = window
		return nil
	}
}

// WithFuzzyThreshold sets the default maximum normalized edit distance a
// fuzzy match may have, from 0 (exact only) to 1 (anything goes).
func WithFuzzyThreshold(threshold float64) Option {
	return func(cfg *config.Config) error {
		cfg.Match.FuzzyThreshold = threshold
		return nil
	}
}

// WithBreakerSettings overrides the circuit breaker guarding upstream calls.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(cfg *config.Config) error {
		cfg.Breaker = settings
		return nil
	}
}

// WithAdultClassifier replaces the built-in adult-content classification.
func WithAdultClassifier(classify func(*models.AppDetails) bool) Option {
	return func(cfg *config.Config) error {
		if classify == nil {
			return fmt.Errorf("adult classifier must not be nil")
		}
		cfg.AdultClassifier = classify
		return nil
	}
}

// WithCatalogWarmup fetches the app list in the background at construction so
// the first search does not pay for the full download.
func WithCatalogWarmup() Option {
	return func(cfg *config.Config) error {
		cfg.WarmCatalog = true
		return nil
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config.Config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		cfg.Logger = logger
		return nil
	}
}

// Client is the consumer-facing facade. It owns one catalog cache and one
// details cache for its lifetime, a matcher borrowing the former, and the
// remote boundary everything is fetched through. Safe for concurrent use.
type Client struct {
	cfg          *config.Config
	logger       *zap.Logger
	tracer       trace.Tracer
	remote       RemoteClient
	catalogCache *cache.Cache[string, *models.Catalog]
	detailsCache *cache.Cache[string, *models.AppDetails]
	matcher      *match.Matcher
	classify     func(*models.AppDetails) bool
	flights      singleflight.Group
}

// New builds a client backed by the public Steam API.
func New(opts ...Option) (*Client, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	remote := steamapi.NewClient(steamapi.Config{
		APIKey:            cfg.APIKey,
		RateLimitCapacity: cfg.RateLimit.Capacity,
		RateLimitWindow:   cfg.RateLimit.Window,
		Breaker:           cfg.Breaker,
		Logger:            cfg.Logger,
	})
	return newClient(cfg, remote), nil
}

// NewWithRemote builds a client on a caller-supplied remote boundary.
func NewWithRemote(remote RemoteClient, opts ...Option) (*Client, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote client must not be nil")
	}
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	return newClient(cfg, remote), nil
}

func buildConfig(opts []Option) (*config.Config, error) {
	cfg := config.NewConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config, remote RemoteClient) *Client {
	catalogCache := cache.New[string, *models.Catalog](1, match.CatalogTTL, cfg.Logger)
	detailsCache := cache.New[string, *models.AppDetails](cfg.Cache.Size, cfg.Cache.TTL, cfg.Logger)
	catalogCache.StartJanitor(cfg.Cache.CleanupInterval)
	detailsCache.StartJanitor(cfg.Cache.CleanupInterval)

	classify := cfg.AdultClassifier
	if classify == nil {
		classify = (*models.AppDetails).IsAdultContent
	}

	c := &Client{
		cfg:          cfg,
		logger:       cfg.Logger,
		tracer:       otel.Tracer("steamclient"),
		remote:       remote,
		catalogCache: catalogCache,
		detailsCache: detailsCache,
		matcher:      match.New(catalogCache, remote, cfg.Logger),
		classify:     classify,
	}
	if cfg.WarmCatalog {
		c.warmCatalog()
	}
	return c
}

// ClearCache drops both caches and their statistics. The matcher's search
// index follows automatically: the next lookup fetches a fresh snapshot and
// rebuilds against it.
func (c *Client) ClearCache() {
	c.catalogCache.Clear()
	c.detailsCache.Clear()
	c.logger.Debug("caches cleared")
}

// Close stops the background cache sweepers. Lookups still work afterwards;
// expired entries are simply freed lazily from then on.
func (c *Client) Close() {
	c.catalogCache.Close()
	c.detailsCache.Close()
}
