package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Entries idle past this are evicted so a scan of distinct client IPs
// cannot grow the limiter map for the life of the process.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type keyedRateLimiter struct {
	entries map[string]*limiterEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

func newKeyedRateLimiter(r rate.Limit, b int) *keyedRateLimiter {
	return &keyedRateLimiter{
		entries: make(map[string]*limiterEntry),
		r:       r,
		b:       b,
	}
}

func (k *keyedRateLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, exists := k.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(k.r, k.b)}
		k.entries[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// sweep drops entries not seen since the cutoff.
func (k *keyedRateLimiter) sweep(cutoff time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for key, entry := range k.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(k.entries, key)
		}
	}
}

func (k *keyedRateLimiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		k.sweep(time.Now().Add(-limiterIdleTTL))
	}
}

// RateLimitByIP: r = requests per second, b = burst.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedRateLimiter(r, b)
	go limiter.janitor(limiterIdleTTL)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests from this IP"})
			return
		}
		c.Next()
	}
}
