package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := start

	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return current }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user:1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d denied inside budget", i+1)
		}
	}

	ok, err := l.Allow(ctx, "user:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("fourth request allowed over budget")
	}

	// A fresh window resets the counter.
	current = start.Add(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "user:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("request denied after window reset")
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "user:1"); !ok {
		t.Fatal("first request for user:1 denied")
	}
	if ok, _ := l.Allow(ctx, "user:1"); ok {
		t.Error("second request for user:1 allowed over budget")
	}
	if ok, _ := l.Allow(ctx, "user:2"); !ok {
		t.Error("user:2 throttled by user:1's budget")
	}
}
