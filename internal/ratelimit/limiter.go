package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Purposes share the same fixed-window counter layout under different keys.
const (
	PurposeLogin  = "login"
	PurposeSignup = "signup"
)

// Limiter is a Redis-backed fixed-window rate limiter keyed by client IP.
type Limiter struct {
	client *redis.Client
	limits map[string]int
	window time.Duration
}

// NewLimiter returns a limiter allowing limits[purpose] requests per window.
// Purposes without a limit are never throttled.
func NewLimiter(client *redis.Client, window time.Duration, limits map[string]int) *Limiter {
	return &Limiter{
		client: client,
		limits: limits,
		window: window,
	}
}

func ipKey(purpose, ip string) string {
	return fmt.Sprintf("ratelimit:%s:ip:%s", purpose, ip)
}

// AllowIPRequestWithPurpose counts one request from ip and reports whether it
// is within the quota for purpose. The window starts with the first request;
// the counter and its expiry are written in one transaction, so a key never
// outlives its window.
func (l *Limiter) AllowIPRequestWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	limit, ok := l.limits[purpose]
	if !ok || limit <= 0 {
		return true, nil
	}

	key := ipKey(purpose, ip)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count rate limited request: %w", err)
	}

	return incr.Val() <= int64(limit), nil
}
