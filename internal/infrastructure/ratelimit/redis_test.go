package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func TestNewRedisLimiter_InvalidConfig(t *testing.T) {
	client := setupTestRedis(t)

	_, err := NewRedisLimiter(client, 0, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewRedisLimiter(client, 3, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRedisLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 5, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	key := "client-minute"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisLimiter_DeniedRequestNotCounted(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 2, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "strict")
		require.NoError(t, err)
	}

	// Repeated denied attempts must leave the counter at the limit.
	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "strict")
		require.NoError(t, err)
		require.False(t, allowed)
	}

	bucket := limiter.bucket(time.Now())
	count, err := client.Get(ctx, limiter.key("strict", bucket)).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRedisLimiter_KeyIndependence(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 1, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "a")
	require.NoError(t, err)
	require.True(t, allowed)
	allowed, err = limiter.Allow(ctx, "a")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, allowed, "identifier b has its own window")

	remaining, err := limiter.RemainingCooldown(ctx, "c")
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestRedisLimiter_RemainingCooldown(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 3, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	remaining, err := limiter.RemainingCooldown(ctx, "client")
	require.NoError(t, err)
	assert.Zero(t, remaining, "no active window means no cooldown")

	_, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)

	remaining, err = limiter.RemainingCooldown(ctx, "client")
	require.NoError(t, err)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, time.Minute)
}

func TestRedisLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter, err := NewRedisLimiter(client, 1, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	allowed, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "client"))

	allowed, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, allowed, "reset clears the window")
}
