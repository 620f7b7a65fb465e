package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBucket(capacity int, window time.Duration) (*Bucket, *time.Time) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := New(capacity, window)
	b.now = func() time.Time { return current }
	return b, &current
}

func TestStartsFull(t *testing.T) {
	b, _ := newTestBucket(5, time.Minute)
	assert.Equal(t, 5, b.Available())
}

func TestConsumeUntilEmpty(t *testing.T) {
	b, _ := newTestBucket(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, b.TryConsume(), "consume %d", i)
	}
	assert.False(t, b.TryConsume())
	assert.Zero(t, b.Available())
}

func TestRefillOverWindow(t *testing.T) {
	b, now := newTestBucket(2, 10*time.Second)

	require.True(t, b.TryConsume())
	require.True(t, b.TryConsume())
	require.False(t, b.TryConsume())

	// One token accrues every window/capacity = 5s.
	*now = now.Add(5 * time.Second)
	assert.True(t, b.TryConsume(), "exactly one token accrued")
	assert.False(t, b.TryConsume())
}

func TestNeverExceedsCapacity(t *testing.T) {
	b, now := newTestBucket(2, 10*time.Second)

	*now = now.Add(24 * time.Hour)
	assert.Equal(t, 2, b.Available())

	require.True(t, b.TryConsume())
	*now = now.Add(24 * time.Hour)
	assert.Equal(t, 2, b.Available(), "refill caps at capacity")
}

func TestFractionalAccrualIsPreserved(t *testing.T) {
	b, now := newTestBucket(2, 10*time.Second)

	require.True(t, b.TryConsume())
	require.True(t, b.TryConsume())

	// Two half-token waits must add up to one whole token.
	*now = now.Add(2500 * time.Millisecond)
	assert.False(t, b.TryConsume())
	assert.Zero(t, b.Available())
	*now = now.Add(2500 * time.Millisecond)
	assert.True(t, b.TryConsume())
}

func TestRetryAfter(t *testing.T) {
	b, now := newTestBucket(2, 10*time.Second)

	t.Run("immediately available", func(t *testing.T) {
		assert.Equal(t, *now, b.RetryAfter())
	})

	t.Run("empty bucket waits a full token period", func(t *testing.T) {
		require.True(t, b.TryConsume())
		require.True(t, b.TryConsume())
		assert.Equal(t, now.Add(5*time.Second), b.RetryAfter())
	})

	t.Run("partial accrual shrinks the wait", func(t *testing.T) {
		*now = now.Add(2500 * time.Millisecond)
		assert.Equal(t, now.Add(2500*time.Millisecond), b.RetryAfter())
	})

	t.Run("available again once a token accrues", func(t *testing.T) {
		*now = now.Add(2500 * time.Millisecond)
		assert.Equal(t, *now, b.RetryAfter())
	})
}

func TestAvailableNeverExceedsCapacityUnderMixedUse(t *testing.T) {
	b, now := newTestBucket(3, 30*time.Second)

	steps := []struct {
		advance time.Duration
		consume int
	}{
		{0, 2},
		{5 * time.Second, 0},
		{45 * time.Second, 1},
		{1 * time.Second, 3},
		{90 * time.Second, 0},
	}
	for _, step := range steps {
		*now = now.Add(step.advance)
		for i := 0; i < step.consume; i++ {
			b.TryConsume()
		}
		available := b.Available()
		assert.GreaterOrEqual(t, available, 0)
		assert.LessOrEqual(t, available, b.Capacity())
	}
}
