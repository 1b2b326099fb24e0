package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory per-key token bucket. A bucket holds up to limit
// tokens and refills completely over one window.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64
	capacity  float64
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter allows limit requests per window for every key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(limit) / window.Seconds(),
		capacity: float64(limit),
		idle:     window,
		now:      time.Now,
	}
}

// Allow consumes a token for key and reports the tokens left.
func (l *RateLimiter) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b := l.refill(key, now)
	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens)
	}
	return false, 0
}

// Refund returns one token to key, up to capacity.
func (l *RateLimiter) Refund(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.tokens = min(b.tokens+1, l.capacity)
	}
}

// Limit reports the bucket capacity.
func (l *RateLimiter) Limit() int {
	return int(l.capacity)
}

func (l *RateLimiter) refill(key string, now time.Time) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
		return b
	}
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*l.rate, l.capacity)
	b.last = now
	return b
}

// sweep drops buckets untouched for a full window; they would be full anyway.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.idle)
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// RateLimit rejects clients that exhausted their bucket with 429. When
// refundSuccess is set, requests answered below 400 give their token back so
// only failures count.
func RateLimit(limiter *RateLimiter, message string, refundSuccess bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		ok, remaining := limiter.Allow(key)
		c.Header("RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			abortWithError(c, http.StatusTooManyRequests, message)
			return
		}

		c.Next()

		if refundSuccess && c.Writer.Status() < http.StatusBadRequest {
			limiter.Refund(key)
		}
	}
}
