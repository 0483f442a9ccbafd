package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "popup:"

// RedisVault implements Vault using Redis, for hosts that keep the session
// store out of process. Slots expire after the configured TTL.
type RedisVault struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed vault. A zero TTL stores slots without
// expiry.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisVault {
	return &RedisVault{client: client, ttl: ttl}
}

// Get returns the value stored under key, or "" when nothing is stored.
func (v *RedisVault) Get(ctx context.Context, key string) (string, error) {
	value, err := v.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading slot %q: %w: %v", key, ErrUnavailable, err)
	}
	return value, nil
}

// Set stores value under key with the vault's TTL.
func (v *RedisVault) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, keyPrefix+key, value, v.ttl).Err(); err != nil {
		return fmt.Errorf("writing slot %q: %w: %v", key, ErrUnavailable, err)
	}
	return nil
}

// Delete removes key. Absent keys are a no-op.
func (v *RedisVault) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clearing slot %q: %w: %v", key, ErrUnavailable, err)
	}
	return nil
}

// CheckHealth verifies Redis connectivity.
func (v *RedisVault) CheckHealth(ctx context.Context) error {
	if err := v.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
