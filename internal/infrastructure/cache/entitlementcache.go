// Package cache provides the redis-backed entitlement value cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planwise-io/planwise/internal/shared/config"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// EntitlementCache caches resolved entitlement values in redis with a short
// TTL. Keys are ent:{customerKey}:{productKey}:{featureKey}. A cache miss or
// redis failure is never fatal; callers fall back to full resolution.
type EntitlementCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewEntitlementCache(cfg *config.RedisConfig, logger logger.Interface) (*EntitlementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := time.Duration(cfg.EntitlementTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &EntitlementCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func cacheKey(customerKey, productKey, featureKey string) string {
	return fmt.Sprintf("ent:%s:%s:%s", customerKey, productKey, featureKey)
}

func (c *EntitlementCache) Get(ctx context.Context, customerKey, productKey, featureKey string) (string, bool, error) {
	value, err := c.client.Get(ctx, cacheKey(customerKey, productKey, featureKey)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read entitlement cache: %w", err)
	}
	return value, true, nil
}

func (c *EntitlementCache) Set(ctx context.Context, customerKey, productKey, featureKey, value string) error {
	if err := c.client.Set(ctx, cacheKey(customerKey, productKey, featureKey), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write entitlement cache: %w", err)
	}
	return nil
}

// InvalidateCustomer removes all cached values for a customer. Called after
// writes that change what the customer is entitled to.
func (c *EntitlementCache) InvalidateCustomer(ctx context.Context, customerKey string) error {
	pattern := fmt.Sprintf("ent:%s:*", customerKey)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("failed to delete cached entitlement", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan entitlement cache: %w", err)
	}
	return nil
}

func (c *EntitlementCache) Close() error {
	return c.client.Close()
}
