// Package ratelimit provides a pluggable request counter with in-memory and
// Redis backends. The in-memory limiter is an approximation: counters reset
// on process restart and are not shared across instances, which is the
// accepted trade-off for single-instance deployments.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is an increment-and-check counter. Allow records one request for
// key and reports whether the caller is still inside the window budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window in-process counter.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewMemoryLimiter creates a limiter allowing limit requests per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return true, nil
	}

	b.count++
	return b.count <= l.limit, nil
}

// sweep drops expired buckets so the map does not grow with every distinct
// key ever seen. Caller holds the lock.
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.buckets) < 4096 {
		return
	}
	for k, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}
