package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "otp:cooldown:"

// Cooldown throttles repeated actions per key.
type Cooldown interface {
	// Acquire returns true when key is not cooling down and starts a new
	// cooldown of ttl for it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release ends the cooldown for key early.
	Release(ctx context.Context, key string) error
}

type redisCooldown struct {
	client redis.UniversalClient
}

func NewRedisCooldown(client redis.UniversalClient) Cooldown {
	return &redisCooldown{client: client}
}

func (c *redisCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, cooldownKeyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx cooldown failed: %w", err)
	}
	return ok, nil
}

func (c *redisCooldown) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, cooldownKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del cooldown failed: %w", err)
	}
	return nil
}

// NoopCooldown never throttles.
type NoopCooldown struct{}

func (NoopCooldown) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

func (NoopCooldown) Release(context.Context, string) error {
	return nil
}
