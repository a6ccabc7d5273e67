// Package ratelimit provides fixed-window request limiting keyed by an
// arbitrary client identifier. Two implementations exist: an in-process
// memory limiter for single-instance deployments and a Redis-backed limiter
// that enforces a shared limit across instances.
//
// The algorithm is deliberately a fixed window, not a sliding one: up to
// 2*max requests can land across a window boundary. Callers relying on the
// limiter treat it as an abuse deterrent, not a precise quota.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidConfig is returned when a limiter is constructed with a
// non-positive request limit or window duration.
var ErrInvalidConfig = errors.New("ratelimit: max requests and window must be positive")

// Limiter bounds the rate of an action per identifier.
type Limiter interface {
	// Allow records and permits the request when the identifier's current
	// window has capacity. A denied request is not counted.
	Allow(ctx context.Context, identifier string) (bool, error)

	// RemainingCooldown returns the time until the identifier's current
	// window resets, or zero when no window is active.
	RemainingCooldown(ctx context.Context, identifier string) (time.Duration, error)
}
