package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the rolling window opened on a session's first request
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter enforces a per-session fixed budget using Redis counters. The
// window starts on the first request of a session and is carried entirely by
// the key's TTL; later requests within the window do not extend it.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewRecipeGenerationRateLimiter creates the limiter for recipe generation:
// 3 requests per session per 24 hours.
func NewRecipeGenerationRateLimiter(redisClient *redis.Client) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    24 * time.Hour,
		Limit:     3,
		KeyPrefix: "rate",
	})
}

// Limit returns the configured ceiling.
func (rl *RateLimiter) Limit() int {
	return rl.config.Limit
}

// Window returns the configured window duration.
func (rl *RateLimiter) Window() time.Duration {
	return rl.config.Window
}

func (rl *RateLimiter) key(userID string) string {
	return fmt.Sprintf("%s:%s", rl.config.KeyPrefix, userID)
}

// Reserve checks the session's counter and charges one request when under the
// limit. At the ceiling it charges nothing. The read-then-increment sequence
// is not atomic: concurrent requests from the same session near the ceiling
// can overshoot by a small margin.
// Returns: allowed, remaining requests after charging, error.
func (rl *RateLimiter) Reserve(ctx context.Context, userID string) (bool, int, error) {
	key := rl.key(userID)

	count, err := rl.redis.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return false, 0, fmt.Errorf("failed to read rate counter: %w", err)
	}

	if err == nil && count >= rl.config.Limit {
		return false, 0, nil
	}

	if err == redis.Nil || count == 0 {
		// First use of a window: start the counter with a fresh expiry.
		pipe := rl.redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rl.config.Window)
		if _, err := pipe.Exec(ctx); err != nil {
			return false, 0, fmt.Errorf("failed to start rate window: %w", err)
		}
		return true, rl.config.Limit - 1, nil
	}

	next, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	remaining := rl.config.Limit - int(next)
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, nil
}

// Count returns the session's current counter value, zero when absent.
func (rl *RateLimiter) Count(ctx context.Context, userID string) (int, error) {
	count, err := rl.redis.Get(ctx, rl.key(userID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate counter: %w", err)
	}
	return count, nil
}
