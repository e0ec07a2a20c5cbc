package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding outbound feed requests.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows bursts of maxTokens with one token restored per
// refillInterval.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// Wait blocks until a token is available or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillInterval):
		}
	}
}

func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	restored := int(now.Sub(r.lastRefill) / r.refillInterval)
	if restored > 0 {
		r.tokens += restored
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(restored) * r.refillInterval)
	}

	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}
