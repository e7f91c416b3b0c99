// Package ratelimit provides client-side throttling for platform API calls.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration for a platform.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size.
	BurstSize int
}

// Limiter throttles requests with a token bucket and honours server-imposed
// backoff from 429 responses.
type Limiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// New creates a limiter from the given configuration.
func New(cfg Config) *Limiter {
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit,
// respecting any backoff set by RecordRetryAfter.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return l.bucket.Wait(ctx)
}

// RecordRetryAfter sets a backoff period after a 429 response. Non-positive
// values use a 60 second default.
func (l *Limiter) RecordRetryAfter(seconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seconds <= 0 {
		seconds = 60
	}
	l.retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
}

// Allow reports whether a request can be made immediately without blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.bucket.Allow()
}
