package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const visibleListKey = "catalog:visible"

// Cache keeps the visible-product listing in Redis. Every admin mutation
// invalidates it; concurrent misses share a single database load.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// VisibleProducts returns the cached visible listing, loading and storing
// it on a miss.
func (c *Cache) VisibleProducts(ctx context.Context, loader func(context.Context) ([]Product, error)) ([]Product, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, visibleListKey).Bytes()
	if err == nil {
		var products []Product
		if jsonErr := json.Unmarshal(payload, &products); jsonErr == nil {
			return products, nil
		}
		// Corrupt entry; fall through to reload.
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down should not take the catalog down with it.
		return loader(ctx)
	}

	result, err, _ := c.group.Do(visibleListKey, func() (interface{}, error) {
		products, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if encoded, err := json.Marshal(products); err == nil {
			_ = c.client.Set(ctx, visibleListKey, encoded, c.ttl).Err()
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Product), nil
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, visibleListKey).Err()
}
