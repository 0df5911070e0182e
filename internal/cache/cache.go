// Package cache keeps the last successful pool payload per provider in
// Redis, so a provider that goes down briefly can keep serving its most
// recent data instead of disappearing from the dashboard.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const keyPrefix = "yield-radar:pools:"

// ProviderCache is a thin last-write-wins layer over Redis. A nil
// *ProviderCache is valid and disables caching, so the aggregator does
// not need to special-case a missing Redis deployment.
type ProviderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and verifies the connection. ttl bounds how stale
// a last-good payload may be before it is no longer served.
func New(redisURL, password string, ttl time.Duration) (*ProviderCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ProviderCache{rdb: rdb, ttl: ttl}, nil
}

// Close shuts down the Redis connection.
func (c *ProviderCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// PutPools records a provider's successful fetch. Write failures are
// dropped: caching is best-effort and never blocks aggregation.
func (c *ProviderCache) PutPools(ctx context.Context, provider string, pools []pool.Pool) {
	if c == nil || len(pools) == 0 {
		return
	}
	payload, err := json.Marshal(pools)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, keyPrefix+provider, payload, c.ttl)
}

// GetPools returns the last-good payload for a provider, if one exists
// within the TTL window.
func (c *ProviderCache) GetPools(ctx context.Context, provider string) ([]pool.Pool, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, keyPrefix+provider).Bytes()
	if err != nil {
		return nil, false
	}
	var pools []pool.Pool
	if err := json.Unmarshal(payload, &pools); err != nil {
		return nil, false
	}
	return pools, len(pools) > 0
}
