package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit"

// limitWindow pairs a window length with its request budget.
type limitWindow struct {
	span  time.Duration
	limit int
}

// RedisRateLimiter keeps one sorted set per key and window, scored by
// request timestamp. Entries older than the window are pruned on every
// check, giving a sliding window rather than fixed buckets.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

var _ RateLimiter = (*RedisRateLimiter)(nil)

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()
	windows := []limitWindow{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
		{24 * time.Hour, config.RequestsPerDay},
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count, err := l.record(ctx, windowKey(key, w.span), w.span, now)
		if err != nil {
			return false, err
		}
		if count >= int64(w.limit) {
			return false, nil
		}
	}
	return true, nil
}

// record prunes expired entries, counts what is left, and books the
// current request in one round trip. The returned count excludes the
// request being booked.
func (l *RedisRateLimiter) record(ctx context.Context, redisKey string, span time.Duration, now time.Time) (int64, error) {
	cutoff := strconv.FormatInt(now.Add(-span).UnixNano(), 10)
	stamp := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(ctx, redisKey, span+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record request for %s: %w", redisKey, err)
	}

	return count.Val(), nil
}

// Remaining reports how many requests the key has used inside the window.
func (l *RedisRateLimiter) Remaining(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := windowKey(key, window)
	cutoff := strconv.FormatInt(time.Now().Add(-window).UnixNano(), 10)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	count := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count requests for %s: %w", redisKey, err)
	}

	return count.Val(), nil
}

// Reset drops every window tracked for the key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, keyPrefix+":"+key+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan rate limit keys: %w", err)
	}
	return nil
}

func windowKey(key string, window time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, key, window)
}
