package redis

// Package redis provides Redis-based adapters for the finledger backend.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultAttemptPrefix = "login_attempts:"

// LoginThrottle counts failed login attempts per principal in Redis with a
// fixed TTL window. It is best-effort: a Redis outage must not lock every
// user out, callers decide how to treat errors.
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxAttempts int
	window      time.Duration
}

// ThrottleOptions configures a LoginThrottle.
type ThrottleOptions struct {
	// MaxAttempts is the number of failures tolerated per window.
	MaxAttempts int
	// Window is the TTL applied when the first failure is recorded.
	Window time.Duration
	// Prefix overrides the default key prefix.
	Prefix string
}

// NewLoginThrottle creates a Redis-backed login throttle.
func NewLoginThrottle(client redis.UniversalClient, opts ThrottleOptions) (*LoginThrottle, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.MaxAttempts <= 0 {
		return nil, errors.New("max attempts must be positive")
	}
	if opts.Window <= 0 {
		return nil, errors.New("attempt window must be positive")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultAttemptPrefix
	}
	return &LoginThrottle{
		client:      client,
		prefix:      prefix,
		maxAttempts: opts.MaxAttempts,
		window:      opts.Window,
	}, nil
}

// Allowed reports whether the principal may attempt a login.
func (t *LoginThrottle) Allowed(ctx context.Context, key string) (bool, error) {
	count, err := t.client.Get(ctx, t.prefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("throttle get: %w", err)
	}
	return count < t.maxAttempts, nil
}

// RecordFailure bumps the failure counter, starting the TTL window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	full := t.prefix + key
	count, err := t.client.Incr(ctx, full).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, full, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.prefix+key).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}
