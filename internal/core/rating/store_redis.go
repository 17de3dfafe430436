package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/constants"
)

// RedisStatsCache implements [StatsCache] on top of go-redis.
type RedisStatsCache struct {
	client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func statsKey(developerID string) string {
	return constants.RedisPrefixRatingStats + developerID
}

func (cache *RedisStatsCache) Get(context context.Context, developerID string) (*Stats, error) {
	payload, err := cache.client.Get(context, statsKey(developerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Rating stats")
		}
		return nil, fmt.Errorf("rating_cache_get_failed: %w", err)
	}

	stats := &Stats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("rating_cache_decode_failed: %w", err)
	}

	return stats, nil
}

func (cache *RedisStatsCache) Set(context context.Context, stats *Stats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("rating_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, statsKey(stats.DeveloperID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("rating_cache_set_failed: %w", err)
	}

	return nil
}

func (cache *RedisStatsCache) Invalidate(context context.Context, developerID string) error {
	if err := cache.client.Del(context, statsKey(developerID)).Err(); err != nil {
		return fmt.Errorf("rating_cache_invalidate_failed: %w", err)
	}

	return nil
}
