package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, max int, window time.Duration) (*MemoryLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter, err := NewMemoryLimiter(max, window, WithClock(clock.Now))
	require.NoError(t, err)
	return limiter, clock
}

func TestNewMemoryLimiter_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		max    int
		window time.Duration
	}{
		{"zero max", 0, time.Minute},
		{"negative max", -1, time.Minute},
		{"zero window", 3, 0},
		{"negative window", 3, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMemoryLimiter(tt.max, tt.window)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMemoryLimiter_WindowSemantics(t *testing.T) {
	limiter, clock := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
		clock.Advance(time.Second)
	}

	allowed, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, allowed, "4th request within the window should be denied")

	// A denied request must not extend or recount the window.
	remaining, err := limiter.RemainingCooldown(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 57*time.Second, remaining)

	// At the reset boundary a fresh window starts with count 1.
	clock.Advance(57 * time.Second)
	allowed, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, allowed, "request at window reset should start a fresh window")

	allowed, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, allowed, "fresh window should have capacity after the first request")
}

func TestMemoryLimiter_KeyIndependence(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "exhausted")
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "exhausted")
	require.NoError(t, err)
	require.False(t, allowed)

	// Another identifier is unaffected.
	remaining, err := limiter.RemainingCooldown(ctx, "untouched")
	require.NoError(t, err)
	assert.Zero(t, remaining)

	allowed, err = limiter.Allow(ctx, "untouched")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryLimiter_RemainingCooldown(t *testing.T) {
	limiter, clock := newTestLimiter(t, 1, 30*time.Second)
	ctx := context.Background()

	remaining, err := limiter.RemainingCooldown(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, remaining, "unknown identifier has no cooldown")

	_, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)

	clock.Advance(10 * time.Second)
	remaining, err = limiter.RemainingCooldown(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, remaining)

	clock.Advance(25 * time.Second)
	remaining, err = limiter.RemainingCooldown(ctx, "client")
	require.NoError(t, err)
	assert.Zero(t, remaining, "cooldown never goes negative")
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	limiter, clock := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := limiter.Allow(ctx, id)
		require.NoError(t, err)
	}
	require.Equal(t, 3, limiter.Len())

	clock.Advance(30 * time.Second)
	_, err := limiter.Allow(ctx, "d")
	require.NoError(t, err)

	clock.Advance(45 * time.Second)

	// a, b, c expired 15s ago; d has 15s left.
	removed := limiter.Sweep()
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, limiter.Len())
}

func TestMemoryLimiter_BoundaryBurst(t *testing.T) {
	// Fixed windows permit up to 2*max requests across a boundary. That is
	// the documented policy; this test pins it so it is not "fixed" silently.
	limiter, clock := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	clock.Advance(58 * time.Second)
	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "bursty")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	clock.Advance(3 * time.Minute)
	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "bursty")
		require.NoError(t, err)
		assert.True(t, allowed, "new window permits a fresh burst")
	}
}
