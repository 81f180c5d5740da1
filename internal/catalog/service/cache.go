package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"realty-portal-backend/internal/catalog/domain"
)

const publishedCacheKey = "catalog:published"

// ReadCache caches the published catalog in front of the database.
// All failures are soft: a broken cache degrades to a direct query.
type ReadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReadCache creates a catalog read cache. Returns nil when redisURL is
// empty so the service can treat the cache as absent.
func NewReadCache(redisURL string, ttl time.Duration) *ReadCache {
	if redisURL == "" || ttl <= 0 {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil
	}
	return &ReadCache{client: redis.NewClient(opts), ttl: ttl}
}

// GetPublished returns the cached published listings, or ok=false on any miss
// or error.
func (c *ReadCache) GetPublished(ctx context.Context) ([]domain.Property, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, publishedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var props []domain.Property
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, false
	}
	return props, true
}

// SetPublished stores the published listings with the configured TTL.
func (c *ReadCache) SetPublished(ctx context.Context, props []domain.Property) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return
	}
	c.client.Set(ctx, publishedCacheKey, raw, c.ttl)
}

// Invalidate drops the cached catalog after any write that changes visibility.
func (c *ReadCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, publishedCacheKey)
}
