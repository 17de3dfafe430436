package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/workbay/workbay/internal/platform/constants"
)

// RedisViewCounter implements [ViewCounter] with Redis INCR. Counters are
// volatile by design: losing them costs analytics, not data.
type RedisViewCounter struct {
	client *redis.Client
}

func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

func viewKey(videoID string) string {
	return constants.RedisPrefixVideoViews + videoID
}

func (counter *RedisViewCounter) Increment(context context.Context, videoID string) (int64, error) {
	views, err := counter.client.Incr(context, viewKey(videoID)).Result()
	if err != nil {
		return 0, fmt.Errorf("video_views_incr_failed: %w", err)
	}

	return views, nil
}

func (counter *RedisViewCounter) Get(context context.Context, videoID string) (int64, error) {
	views, err := counter.client.Get(context, viewKey(videoID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("video_views_get_failed: %w", err)
	}

	return views, nil
}
