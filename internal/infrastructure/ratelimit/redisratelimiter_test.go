package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user:1", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user:1", config)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request exceeds the budget")

	// A different key has its own budget.
	allowed, err = limiter.Allow(ctx, "user:2", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Remaining(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 10}

	for i := 0; i < 4; i++ {
		_, err := limiter.Allow(ctx, "user:7", config)
		require.NoError(t, err)
	}

	used, err := limiter.Remaining(ctx, "user:7", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), used)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1}

	_, err := limiter.Allow(ctx, "user:9", config)
	require.NoError(t, err)

	allowed, err := limiter.Allow(ctx, "user:9", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "user:9"))

	allowed, err = limiter.Allow(ctx, "user:9", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}
