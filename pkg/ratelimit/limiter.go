package ratelimit

import (
	"context"
	"time"

	"go-contact-relay/pkg/logger"
)

// Store is a pluggable counter backend: an atomic increment-with-expiry
// per key. The in-memory store suits a single instance; the Redis store
// gives multi-instance deployments shared counters.
type Store interface {
	// Incr atomically increments the counter for key, starting the
	// window on the first hit, and returns the post-increment count and
	// when the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Window configures one rate-limit gate.
type Window struct {
	// Limit is the number of requests allowed per window.
	Limit int
	// Period is the window duration.
	Period time.Duration
	// Prefix namespaces the counter keys in a shared store.
	Prefix string
}

// Result reports the outcome of a gate check.
type Result struct {
	Allowed bool
	Count   int
	ResetAt time.Time
}

// Limiter checks windows against a primary store with an in-process
// fallback. A primary store error fails open onto the fallback rather
// than rejecting traffic.
type Limiter struct {
	primary  Store
	fallback Store
}

// New creates a limiter. primary may be nil (no shared backend), fallback
// must not be.
func New(primary, fallback Store) *Limiter {
	return &Limiter{primary: primary, fallback: fallback}
}

// NewInMemory creates a limiter backed only by process memory.
func NewInMemory() *Limiter {
	return New(nil, NewMemoryStore())
}

// Allow consumes one request from the window's counter for key and
// reports whether it stayed within the limit. The counter is consumed
// even when the request is ultimately rejected by a later gate.
func (l *Limiter) Allow(ctx context.Context, w Window, key string) Result {
	fullKey := w.Prefix + key

	if l.primary != nil {
		count, resetAt, err := l.primary.Incr(ctx, fullKey, w.Period)
		if err == nil {
			return Result{Allowed: count <= w.Limit, Count: count, ResetAt: resetAt}
		}
		logger.Log.Warn("rate limit store unavailable, using in-memory fallback", "error", err)
	}

	count, resetAt, _ := l.fallback.Incr(ctx, fullKey, w.Period)
	return Result{Allowed: count <= w.Limit, Count: count, ResetAt: resetAt}
}
