package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in Redis so the budget is shared across
// instances. INCR creates the key at 1; EXPIRE is set on first increment,
// giving a fixed window per key.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("rl:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			// Without a TTL the key would count forever. Drop it and let
			// the caller fail open.
			l.client.Del(ctx, redisKey)
			return false, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}
