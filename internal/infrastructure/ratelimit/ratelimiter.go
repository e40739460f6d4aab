package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig sets the request budget per client key. A zero value
// disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// RateLimiter answers whether a client key may make another request right
// now. Implementations track a sliding window per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
