package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEngine stores entries in Redis.
// Single values use SET EX. Lists are DEL + RPUSH + EXPIRE in one MULTI/EXEC, so LRANGE 0 -1 returns write order.
type RedisEngine struct {
	client redis.UniversalClient
}

// NewRedisEngine does not own client; redis.Manager closes it
func NewRedisEngine(client redis.UniversalClient) *RedisEngine {
	return &RedisEngine{client: client}
}

func (e *RedisEngine) Name() string { return "redis" }

func (e *RedisEngine) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := e.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, ErrEngineGet.Wrap(err)
	}
	return b, nil
}

func (e *RedisEngine) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := e.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return ErrEngineSet.Wrap(err)
	}
	return nil
}

func (e *RedisEngine) GetList(ctx context.Context, key string) ([][]byte, error) {
	vals, err := e.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, ErrEngineGet.Wrap(err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

func (e *RedisEngine) SetList(ctx context.Context, key string, values [][]byte, ttl time.Duration) error {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	_, err := e.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) > 0 {
			pipe.RPush(ctx, key, items...)
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return ErrEngineSet.Wrap(err)
	}
	return nil
}

func (e *RedisEngine) Delete(ctx context.Context, key string) error {
	if err := e.client.Del(ctx, key).Err(); err != nil {
		return ErrEngineSet.Wrap(err)
	}
	return nil
}

func (e *RedisEngine) Ping(ctx context.Context) error {
	return e.client.Ping(ctx).Err()
}

// Close leaves the shared client open
func (e *RedisEngine) Close() error { return nil }
