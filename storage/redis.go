package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "skillswap:client:"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// Redis stores keys under a per-client prefix so several clients (or
// profiles) can share one Redis instance.
type Redis struct {
	client redisClient
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Apply runs the batch inside MULTI/EXEC.
func (r *Redis) Apply(ctx context.Context, batch Batch) error {
	if batch.Empty() {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(batch.Delete) > 0 {
			keys := make([]string, 0, len(batch.Delete))
			for _, key := range batch.Delete {
				keys = append(keys, r.key(key))
			}
			pipe.Del(ctx, keys...)
		}
		for key, value := range batch.Set {
			pipe.Set(ctx, r.key(key), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: redis apply: %w", err)
	}
	return nil
}
