package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiter(t *testing.T) {
	t.Run("same key reuses its limiter", func(t *testing.T) {
		k := newKeyedRateLimiter(1, 1)

		first := k.get("10.0.0.1")
		second := k.get("10.0.0.1")

		assert.Same(t, first, second)
	})

	t.Run("sweep evicts idle entries and keeps recent ones", func(t *testing.T) {
		k := newKeyedRateLimiter(1, 1)

		k.get("10.0.0.1")
		k.get("10.0.0.2")

		k.mu.Lock()
		k.entries["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
		k.mu.Unlock()

		k.sweep(time.Now().Add(-limiterIdleTTL))

		k.mu.Lock()
		defer k.mu.Unlock()
		assert.NotContains(t, k.entries, "10.0.0.1")
		assert.Contains(t, k.entries, "10.0.0.2")
	})

	t.Run("a swept key starts over with a fresh limiter", func(t *testing.T) {
		k := newKeyedRateLimiter(1, 1)

		first := k.get("10.0.0.1")
		assert.True(t, first.Allow())

		k.sweep(time.Now().Add(time.Second))

		second := k.get("10.0.0.1")
		assert.NotSame(t, first, second)
		assert.True(t, second.Allow())
	})
}
