package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
)

const newestMembersPrefix = "members:newest:"

// RedisCache caches the public newest-members list
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Addr,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return &RedisCache{Client: redis.NewClient(opts), ttl: cfg.TTL}
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForNewestMembers generates the Redis key for a newest-members page of size limit
func (c *RedisCache) KeyForNewestMembers(limit int) string {
	return fmt.Sprintf("%s%d", newestMembersPrefix, limit)
}

// GetNewestMembers returns the cached list. ok is false on a cache miss.
func (c *RedisCache) GetNewestMembers(ctx context.Context, limit int) ([]models.PublicProfile, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForNewestMembers(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var members []models.PublicProfile
	if err := json.Unmarshal(val, &members); err != nil {
		return nil, false, err
	}
	return members, true, nil
}

// SetNewestMembers stores the list with the configured TTL
func (c *RedisCache) SetNewestMembers(ctx context.Context, limit int, members []models.PublicProfile) error {
	payload, err := json.Marshal(members)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.KeyForNewestMembers(limit), payload, c.ttl).Err()
}

// InvalidateMembers drops every cached newest-members page
func (c *RedisCache) InvalidateMembers(ctx context.Context) error {
	iter := c.Client.Scan(ctx, 0, newestMembersPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
