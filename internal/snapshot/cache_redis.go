package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"rescueops/internal/platform/redis"
)

const (
	latestCacheKey = "rescueops:snapshot:latest"
	latestCacheTTL = 5 * time.Minute
)

// Cache is a read-through Redis cache in front of the snapshot store's
// Latest query, which the dashboard polls. A nil client disables caching.
// The short TTL bounds staleness after a same-day regeneration.
type Cache struct {
	client *redis.Client
	store  Store
}

func NewCache(client *redis.Client, store Store) *Cache {
	return &Cache{client: client, store: store}
}

// Latest returns the most recent snapshot, serving from Redis when possible.
// Cache errors fall back to the store; the cache is an optimization, never a
// source of truth.
func (c *Cache) Latest(ctx context.Context) (*Snapshot, error) {
	if c.client != nil {
		payload, err := c.client.Get(ctx, latestCacheKey).Bytes()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal(payload, &snap); err == nil {
				return &snap, nil
			}
		}
	}

	snap, err := c.store.Latest(ctx)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if payload, err := json.Marshal(snap); err == nil {
			c.client.Set(ctx, latestCacheKey, payload, latestCacheTTL)
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot; called after regeneration so the
// dashboard picks up the new rollup immediately.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.client != nil {
		c.client.Del(ctx, latestCacheKey)
	}
}
