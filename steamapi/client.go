// Package steamapi talks to the Steam Web API and storefront endpoints. It
// owns the transport concerns: rate limiting, circuit breaking, credential
// attachment, and mapping upstream responses into a typed failure taxonomy.
package steamapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Xmerr/steam-client/config"
	"github.com/Xmerr/steam-client/internal/ratelimit"
	"github.com/Xmerr/steam-client/models"
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"
	defaultHTTPTimeout  = 15 * time.Second
)

// Config carries the transport settings. Zero values fall back to the public
// Steam hosts, a 15-second HTTP timeout, and the default rate budget.
type Config struct {
	APIKey            string
	APIBaseURL        string
	StoreBaseURL      string
	HTTPClient        *http.Client
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	Breaker           gobreaker.Settings
	Logger            *zap.Logger
}

// Client performs the actual Steam calls. Every request first takes a token
// from the local bucket, then runs through the circuit breaker; refusals and
// upstream problems both come back as *Error values.
type Client struct {
	apiKey     string
	apiBase    string
	storeBase  string
	httpClient *http.Client
	bucket     *ratelimit.Bucket
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient builds a Steam API client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.StoreBaseURL == "" {
		cfg.StoreBaseURL = defaultStoreBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if cfg.RateLimitCapacity <= 0 {
		cfg.RateLimitCapacity = config.DefaultRateLimitCapacity
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = config.DefaultRateLimitWindow
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "steam-api"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		apiBase:    cfg.APIBaseURL,
		storeBase:  cfg.StoreBaseURL,
		httpClient: cfg.HTTPClient,
		bucket:     ratelimit.New(cfg.RateLimitCapacity, cfg.RateLimitWindow),
		breaker:    gobreaker.NewCircuitBreaker(cfg.Breaker),
		logger:     cfg.Logger,
	}
}

// FetchCatalog retrieves the complete Steam app list.
func (c *Client) FetchCatalog(ctx context.Context) ([]models.App, error) {
	endpoint := c.apiBase + "/ISteamApps/GetAppList/v2/"
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}
	body, err := c.get(ctx, endpoint, "app list")
	if err != nil {
		return nil, err
	}
	apps, err := decodeAppList(body)
	if err != nil {
		return nil, Upstream(0, fmt.Errorf("decoding app list: %w", err))
	}
	c.logger.Debug("fetched steam app list", zap.Int("apps", len(apps)))
	return apps, nil
}

// FetchAppDetails retrieves and transforms the storefront record for one app.
// Unknown apps (and apps the storefront refuses to describe) fail as not
// found.
func (c *Client) FetchAppDetails(ctx context.Context, appID string) (*models.AppDetails, error) {
	endpoint := fmt.Sprintf("%s/api/appdetails?appids=%s", c.storeBase, url.QueryEscape(appID))
	body, err := c.get(ctx, endpoint, "app "+appID)
	if err != nil {
		return nil, err
	}
	details, err := decodeAppDetails(body, appID)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, Upstream(0, fmt.Errorf("decoding app details: %w", err))
	}
	return details, nil
}

// TryConsumeRateToken takes one token from the bucket, reporting whether the
// caller may proceed. Exposed so callers can probe quota without issuing a
// request.
func (c *Client) TryConsumeRateToken() bool {
	return c.bucket.TryConsume()
}

// RetryAfter reports the earliest instant the next request could be admitted.
func (c *Client) RetryAfter() time.Time {
	return c.bucket.RetryAfter()
}

// AvailableTokens reports the whole tokens currently in the bucket.
func (c *Client) AvailableTokens() int {
	return c.bucket.Available()
}

// get runs one rate-limited GET and returns the body of a 200 response.
// resource names what is being fetched, for error messages ("app list",
// "app 570"). Only transport failures and 5xx responses count against the
// circuit breaker, so missing apps and bad credentials cannot trip it.
func (c *Client) get(ctx context.Context, rawURL, resource string) ([]byte, error) {
	if !c.bucket.TryConsume() {
		retryAt := c.bucket.RetryAfter()
		c.logger.Debug("rate limit refused request",
			zap.String("resource", resource),
			zap.Time("retry_after", retryAt))
		return nil, RateLimited(retryAt)
	}

	var (
		status int
		body   []byte
	)
	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		status = resp.StatusCode
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, err
		}
		if status >= http.StatusInternalServerError {
			return nil, fmt.Errorf("steam responded %d", status)
		}
		return nil, nil
	})
	if err != nil {
		c.logger.Warn("steam request failed",
			zap.String("resource", resource),
			zap.Int("status", status),
			zap.Error(err))
		if status >= http.StatusInternalServerError {
			return nil, Upstream(status, nil)
		}
		return nil, Upstream(0, err)
	}

	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, AuthFailure(status)
	case http.StatusNotFound:
		return nil, NotFound(resource)
	default:
		return nil, Upstream(status, nil)
	}
}
