package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"socialite/internal/model"
)

const (
	// TrendingKeyPrefix is the key prefix for cached trending-tag results,
	// suffixed with the requested limit.
	TrendingKeyPrefix = "trending:tags:"

	// TrendingTTL bounds staleness of the trending surface. Misses and cache
	// failures always fall through to the store aggregation.
	TrendingTTL = 5 * time.Minute
)

// TrendingCache is a best-effort cache for the trending-hashtags aggregation.
// Using an interface keeps the feed service testable without Redis.
type TrendingCache interface {
	// Get returns the cached result for limit, or (nil, nil) on a miss.
	Get(ctx context.Context, limit int) ([]model.TagCount, error)

	// Set stores the result for limit with the standard TTL.
	Set(ctx context.Context, limit int, tags []model.TagCount) error
}

// RedisTrendingCache implements TrendingCache on Redis string keys.
type RedisTrendingCache struct {
	client *redis.Client
}

func NewTrendingCache(client *redis.Client) TrendingCache {
	return &RedisTrendingCache{client: client}
}

func trendingKey(limit int) string {
	return fmt.Sprintf("%s%d", TrendingKeyPrefix, limit)
}

func (c *RedisTrendingCache) Get(ctx context.Context, limit int) ([]model.TagCount, error) {
	raw, err := c.client.Get(ctx, trendingKey(limit)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("trending cache get: %w", err)
	}

	var tags []model.TagCount
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("trending cache decode: %w", err)
	}
	return tags, nil
}

func (c *RedisTrendingCache) Set(ctx context.Context, limit int, tags []model.TagCount) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("trending cache encode: %w", err)
	}

	if err := c.client.Set(ctx, trendingKey(limit), raw, TrendingTTL).Err(); err != nil {
		return fmt.Errorf("trending cache set: %w", err)
	}
	return nil
}
