package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles requests per client IP with a token bucket. It is
// applied to the login endpoint to slow down credential stuffing; the rest of
// the API is left unthrottled.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	refill   float64 // tokens per second
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing burst requests at once, refilling
// at perMinute requests per minute.
func NewRateLimiter(burst int, perMinute int) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(burst),
		refill:   float64(perMinute) / 60.0,
	}
	go rl.janitor()
	return rl
}

// Limit returns the middleware. Over-limit requests get 429 with a
// machine-readable code, matching the response envelope of the handlers.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests, slow down",
				},
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity}
		rl.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens = min(rl.capacity, b.tokens+elapsed*rl.refill)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// janitor drops buckets idle long enough to be full again, bounding memory
// under rotating client IPs.
func (rl *RateLimiter) janitor() {
	idle := time.Duration(rl.capacity/rl.refill) * time.Second
	if idle < time.Minute {
		idle = time.Minute
	}

	for range time.Tick(idle) {
		cutoff := time.Now().Add(-idle)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
