package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

const redisKeyPrefix = "csv-summary:"

// Redis is the distributed layer shared by every replica of the service.
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Name() string {
	return "redis"
}

func (r *Redis) Get(ctx context.Context, key string) (entity.DatasetSummary, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.DatasetSummary{}, false, nil
	}
	if err != nil {
		return entity.DatasetSummary{}, false, err
	}

	s, err := decode(data)
	if err != nil {
		return entity.DatasetSummary{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return s, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, summary entity.DatasetSummary, ttl time.Duration) error {
	data, err := encode(summary)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}
