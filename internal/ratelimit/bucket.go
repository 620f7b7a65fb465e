// Package ratelimit implements the token bucket that gates outbound Steam API
// calls.
package ratelimit

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Bucket holds up to capacity tokens and refills continuously, going from
// empty to full over one window. Consuming requires a whole token; the
// fractional balance is preserved between calls. All methods are safe for
// concurrent use and never block.
type Bucket struct {
	limiter  *rate.Limiter
	capacity int
	window   time.Duration
	now      func() time.Time
}

// New creates a full bucket with the given capacity and refill window.
func New(capacity int, window time.Duration) *Bucket {
	perSecond := rate.Limit(float64(capacity) / window.Seconds())
	return &Bucket{
		limiter:  rate.NewLimiter(perSecond, capacity),
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

// TryConsume takes one token if at least one whole token has accrued.
func (b *Bucket) TryConsume() bool {
	return b.limiter.AllowN(b.now(), 1)
}

// RetryAfter returns the earliest instant a consume could succeed: the current
// time when a token is already available, otherwise now plus the time needed
// to accrue the deficit, rounded up to the next millisecond.
func (b *Bucket) RetryAfter() time.Time {
	now := b.now()
	tokens := b.limiter.TokensAt(now)
	if tokens >= 1 {
		return now
	}
	wait := time.Duration((1 - tokens) * float64(b.window) / float64(b.capacity))
	return now.Add(ceilToMillisecond(wait))
}

// Available returns the whole tokens currently accrued. Diagnostics only;
// consumption always works on the exact fractional balance.
func (b *Bucket) Available() int {
	return int(math.Floor(b.limiter.TokensAt(b.now())))
}

// Capacity returns the configured maximum token count.
func (b *Bucket) Capacity() int {
	return b.capacity
}

func ceilToMillisecond(d time.Duration) time.Duration {
	if rem := d % time.Millisecond; rem != 0 {
		return d - rem + time.Millisecond
	}
	return d
}
