package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToCapacity(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("client-a") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
	if rl.Allow("client-a") {
		t.Fatal("request past capacity should have been rejected")
	}

	// Other clients have their own bucket.
	if !rl.Allow("client-b") {
		t.Fatal("a fresh client should not share the exhausted bucket")
	}
}

func TestRateLimiterClampsNonPositiveRate(t *testing.T) {
	for _, rate := range []int{0, -5} {
		rl := NewRateLimiter(rate)
		if !rl.Allow("client-a") {
			t.Fatalf("rate %d: first request should be allowed after clamping", rate)
		}
		rl.Stop()
	}
}

func TestRateLimiterEvictsStaleBuckets(t *testing.T) {
	rl := NewRateLimiter(10)
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		rl.Allow(fmt.Sprintf("client-%d", i))
	}

	rl.mu.Lock()
	tracked := len(rl.buckets)
	rl.mu.Unlock()
	if tracked != 100 {
		t.Fatalf("expected 100 tracked clients before eviction, got %d", tracked)
	}

	// A sweep as of a point past the idle window drops every bucket.
	rl.evictStale(time.Now().Add(staleAfter + time.Second))

	rl.mu.Lock()
	remaining := len(rl.buckets)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected all idle buckets evicted, %d remain", remaining)
	}

	// An evicted client starts over with a fresh bucket.
	if !rl.Allow("client-0") {
		t.Fatal("evicted client should be admitted with a fresh bucket")
	}
}

func TestRateLimiterKeepsActiveBucketsOnSweep(t *testing.T) {
	rl := NewRateLimiter(10)
	defer rl.Stop()

	rl.Allow("client-a")

	// A sweep while the bucket is fresh must not touch it.
	rl.evictStale(time.Now())

	rl.mu.Lock()
	remaining := len(rl.buckets)
	rl.mu.Unlock()
	if remaining != 1 {
		t.Fatalf("expected the active bucket to survive the sweep, %d tracked", remaining)
	}
}
