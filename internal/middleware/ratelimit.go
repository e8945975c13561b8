// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenBucket holds the remaining requests for one client in the current window
type TokenBucket struct {
	mu       sync.Mutex
	tokens   int
	refillAt time.Time
	lastSeen time.Time
}

// RateLimiter hands out a fixed number of requests per client per window
type RateLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*TokenBucket
	capacity int
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine. Call
// Stop to end it.
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	limiter := &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		capacity: capacity,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go limiter.cleanup(5 * time.Minute)

	return limiter
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Capacity is the number of requests allowed per window
func (rl *RateLimiter) Capacity() int {
	return rl.capacity
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(2 * every)
		}
	}
}

// sweep drops buckets idle for longer than maxIdle
func (rl *RateLimiter) sweep(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, bucket := range rl.buckets {
		bucket.mu.Lock()
		idle := now.Sub(bucket.lastSeen)
		bucket.mu.Unlock()
		if idle > maxIdle {
			delete(rl.buckets, ip)
		}
	}
}

func (rl *RateLimiter) bucket(ip string) *TokenBucket {
	rl.mu.RLock()
	bucket, exists := rl.buckets[ip]
	rl.mu.RUnlock()
	if exists {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	// another request may have created it between the locks
	if bucket, exists = rl.buckets[ip]; exists {
		return bucket
	}
	now := rl.now()
	bucket = &TokenBucket{
		tokens:   rl.capacity,
		refillAt: now.Add(rl.interval),
		lastSeen: now,
	}
	rl.buckets[ip] = bucket
	return bucket
}

// Allow consumes one token for ip. It returns whether the request may proceed,
// the tokens left and when the bucket refills.
func (rl *RateLimiter) Allow(ip string) (bool, int, time.Time) {
	bucket := rl.bucket(ip)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := rl.now()
	bucket.lastSeen = now
	if now.After(bucket.refillAt) {
		bucket.tokens = rl.capacity
		bucket.refillAt = now.Add(rl.interval)
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true, bucket.tokens, bucket.refillAt
	}

	return false, 0, bucket.refillAt
}

// RateLimitMiddleware limits requests whose path starts with one of the given
// prefixes. With no prefixes every request is limited.
func RateLimitMiddleware(limiter *RateLimiter, prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !matchesPrefix(c.Request.URL.Path, prefixes) {
			c.Next()
			return
		}

		allowed, remaining, refillAt := limiter.Allow(clientIP(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.capacity))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(time.Until(refillAt).Seconds()) + 1
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(429, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// clientIP extracts the client address, honoring X-Forwarded-For
func clientIP(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	// SplitHostPort copes with bracketed IPv6 addresses
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
