package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a Redis-backed fixed-window limiter. Each identifier gets a
// counter key per window bucket with a TTL slightly longer than the window,
// so the limit holds across multiple server instances sharing one Redis.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRedisLimiter creates a Redis-backed fixed-window limiter. Non-positive
// parameters fail fast with ErrInvalidConfig.
func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) (*RedisLimiter, error) {
	if maxRequests <= 0 || window <= 0 {
		return nil, ErrInvalidConfig
	}
	return &RedisLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}, nil
}

func (l *RedisLimiter) bucket(now time.Time) int64 {
	return now.UnixMilli() / l.window.Milliseconds()
}

func (l *RedisLimiter) key(identifier string, bucket int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", identifier, bucket)
}

// Allow implements Limiter. INCR is atomic, so concurrent calls on the same
// identifier cannot both observe a free slot and overshoot the limit.
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	now := l.now()
	key := l.key(identifier, l.bucket(now))

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		l.client.Expire(ctx, key, l.window+time.Second)
	}

	if count > int64(l.maxRequests) {
		// Undo the increment so denied requests do not consume capacity.
		l.client.Decr(ctx, key)
		return false, nil
	}

	return true, nil
}

// RemainingCooldown implements Limiter. The cooldown is the time until the
// current bucket rolls over; identifiers with no active bucket report zero.
func (l *RedisLimiter) RemainingCooldown(ctx context.Context, identifier string) (time.Duration, error) {
	now := l.now()
	bucket := l.bucket(now)

	exists, err := l.client.Exists(ctx, l.key(identifier, bucket)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check rate limit key: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	resetAt := time.UnixMilli((bucket + 1) * l.window.Milliseconds())
	remaining := resetAt.Sub(now)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Reset clears all windows for an identifier. Used by tests and admin tooling.
func (l *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	pattern := fmt.Sprintf("ratelimit:%s:*", identifier)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}
