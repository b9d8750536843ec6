package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache stores serialized user views keyed by id. A miss is (nil, nil).
// Write paths use Set; read-through fills use SetIfAbsent so a value read
// before a concurrent write never replaces the newer entry.
type UserCache interface {
	GetByID(ctx context.Context, id int64) ([]byte, error)
	Set(ctx context.Context, id int64, data []byte) error
	SetIfAbsent(ctx context.Context, id int64, data []byte) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type userCache struct {
	client *RedisClient
	prefix string
	ttl    time.Duration
}

func NewUserCache(redisClient *RedisClient, ttl time.Duration) UserCache {
	return &userCache{
		client: redisClient,
		prefix: "user:",
		ttl:    ttl,
	}
}

func (c *userCache) key(id int64) string {
	return fmt.Sprintf("%s%d", c.prefix, id)
}

func (c *userCache) GetByID(ctx context.Context, id int64) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (c *userCache) Set(ctx context.Context, id int64, data []byte) error {
	return c.client.client.Set(ctx, c.key(id), data, c.ttl).Err()
}

func (c *userCache) SetIfAbsent(ctx context.Context, id int64, data []byte) (bool, error) {
	return c.client.client.SetNX(ctx, c.key(id), data, c.ttl).Result()
}

func (c *userCache) Delete(ctx context.Context, id int64) error {
	return c.client.client.Del(ctx, c.key(id)).Err()
}

// NoopUserCache always misses. Used when Redis is disabled.
type NoopUserCache struct{}

func (NoopUserCache) GetByID(context.Context, int64) ([]byte, error) { return nil, nil }
func (NoopUserCache) Set(context.Context, int64, []byte) error       { return nil }
func (NoopUserCache) SetIfAbsent(context.Context, int64, []byte) (bool, error) {
	return false, nil
}
func (NoopUserCache) Delete(context.Context, int64) error { return nil }
