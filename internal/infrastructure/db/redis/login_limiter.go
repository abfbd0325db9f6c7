package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute
)

// LoginLimiter tracks failed login attempts per username in Redis.
// Key format: login_fail:<username>, expiring after lockoutWindow.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// IsLocked reports whether the username has exhausted its failure budget.
func (l *LoginLimiter) IsLocked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= lockoutThreshold, nil
}

// RecordFailure increments the failure counter, refreshing its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return l.client.Expire(ctx, key, lockoutWindow).Err()
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.key(username)).Err()
}

func (l *LoginLimiter) key(username string) string {
	return "login_fail:" + username
}
