// Package cache stores ingredient search results in Redis.
//
// Keys embed the catalog version, so a reloaded dataset never serves
// stale entries; old entries simply expire.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/vegfinder/backend/internal/model"
)

const defaultKeyPrefix = "vegfinder:search"

// RedisCache caches search results as JSON documents
type RedisCache struct {
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
}

// NewRedisCache creates a cache whose entries live for ttl
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: defaultKeyPrefix,
	}
}

// Get returns the cached recipes for key, reporting false on a miss
func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Recipe, bool, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	recipes := []model.Recipe{}
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recipes: %w", err)
	}
	return recipes, true, nil
}

// Set stores recipes under key
func (c *RedisCache) Set(ctx context.Context, key string, recipes []model.Recipe) error {
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}
	if err := c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// redisKey hashes the logical key so arbitrary user input stays bounded
func (c *RedisCache) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.keyPrefix + ":" + hex.EncodeToString(sum[:])
}
