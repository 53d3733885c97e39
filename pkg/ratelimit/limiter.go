package ratelimit

import (
	"context"
	"fmt"
	"time"

	"food-delivery/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter kept in Redis. A nil Limiter, or one
// without a client, allows everything.
type Limiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
	prefix      string
}

func NewLimiter(client *redis.Client, config utils.RateLimitConfig) *Limiter {
	return &Limiter{
		redis:       client,
		maxAttempts: config.MaxAttempts,
		window:      config.Window,
		prefix:      "rl",
	}
}

func (l *Limiter) key(scope, subject string) string {
	return l.prefix + ":" + scope + ":" + subject
}

// Enabled reports whether requests are actually counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.redis != nil && l.maxAttempts > 0
}

// Allow counts one attempt for subject within scope. When the budget is
// spent it returns false and the time until the window resets.
func (l *Limiter) Allow(ctx context.Context, scope, subject string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	key := l.key(scope, subject)

	// EXPIRE NX also heals a counter left without a TTL.
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return true, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}

	if int(incr.Val()) <= l.maxAttempts {
		return true, 0, nil
	}

	retryAfter := ttl.Val()
	if retryAfter <= 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}

// Reset clears the counter for subject within scope.
func (l *Limiter) Reset(ctx context.Context, scope, subject string) error {
	if !l.Enabled() {
		return nil
	}
	if err := l.redis.Del(ctx, l.key(scope, subject)).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
