/**
 * @description
 * Rate limiting middleware to prevent abuse of the account API. Uses a simple
 * in-memory token bucket per client address, with periodic cleanup of idle
 * buckets so the map does not grow with every client ever seen.
 *
 * @dependencies
 * - sync: For thread-safe operations
 * - time: For time-based refill and stale-bucket eviction
 * - net: For splitting the client address
 * - net/http: For HTTP middleware
 */
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	// cleanupInterval is how often the background sweep runs.
	cleanupInterval = 5 * time.Minute
	// staleAfter is how long a bucket may sit idle before eviction.
	staleAfter = 10 * time.Minute
)

// RateLimiter tracks a token bucket per client key.
type RateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*tokenBucket
	capacity    int
	refill      time.Duration
	stopCleanup chan struct{}
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing ratePerMinute requests per
// client, with a burst of the same size. Non-positive rates are clamped to
// one request per minute. A background goroutine evicts idle buckets; call
// Stop to end it.
func NewRateLimiter(ratePerMinute int) *RateLimiter {
	if ratePerMinute < 1 {
		ratePerMinute = 1
	}
	rl := &RateLimiter{
		buckets:     make(map[string]*tokenBucket),
		capacity:    ratePerMinute,
		refill:      time.Minute / time.Duration(ratePerMinute),
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupStaleBuckets()

	return rl
}

// Allow reports whether a request from the given key should be admitted.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &tokenBucket{tokens: rl.capacity - 1, lastRefill: now}
		return true
	}

	refilled := int(now.Sub(bucket.lastRefill) / rl.refill)
	if refilled > 0 {
		bucket.tokens += refilled
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// Stop ends the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// cleanupStaleBuckets removes idle buckets to prevent memory leaks.
func (rl *RateLimiter) cleanupStaleBuckets() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale(time.Now())
		case <-rl.stopCleanup:
			return
		}
	}
}

// evictStale drops every bucket idle longer than staleAfter as of now.
func (rl *RateLimiter) evictStale(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > staleAfter {
			delete(rl.buckets, key)
		}
	}
}

// Handler wraps next with per-client rate limiting keyed by remote address.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !rl.Allow(host) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
