package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count         int
	windowResetAt time.Time
}

// MemoryLimiter is a mutex-guarded fixed-window limiter. State is process
// local: limits reset on restart and are not shared across instances. Use
// RedisLimiter when running more than one replica.
type MemoryLimiter struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// MemoryOption customizes a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter creates an in-process fixed-window limiter allowing
// maxRequests per window per identifier. Non-positive parameters fail fast
// with ErrInvalidConfig.
func NewMemoryLimiter(maxRequests int, window time.Duration, opts ...MemoryOption) (*MemoryLimiter, error) {
	if maxRequests <= 0 || window <= 0 {
		return nil, ErrInvalidConfig
	}

	l := &MemoryLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		entries:     make(map[string]*memoryEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow implements Limiter. The first call for an identifier, or any call at
// or past the entry's reset time, starts a fresh window with count 1.
func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || !now.Before(entry.windowResetAt) {
		l.entries[identifier] = &memoryEntry{
			count:         1,
			windowResetAt: now.Add(l.window),
		}
		return true, nil
	}

	if entry.count >= l.maxRequests {
		return false, nil
	}

	entry.count++
	return true, nil
}

// RemainingCooldown implements Limiter.
func (l *MemoryLimiter) RemainingCooldown(_ context.Context, identifier string) (time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok {
		return 0, nil
	}

	remaining := entry.windowResetAt.Sub(now)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Sweep removes entries whose window reset time has already passed. Without
// periodic sweeping the store grows by one entry per distinct identifier for
// the life of the process.
func (l *MemoryLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, entry := range l.entries {
		if !now.Before(entry.windowResetAt) {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (l *MemoryLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// Len returns the number of tracked identifiers.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
