// Package cache 模型缓存：按 key 存取单个实体或有序实体列表，带过期时间
package cache

import (
	"context"
	"time"
)

// Engine is a byte-level cache backend.
// A miss is ErrCacheMiss; any other error means the engine failed and must not be treated as a miss.
type Engine interface {
	Name() string

	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetList 按写入顺序返回列表，key 不存在或列表为空都返回 ErrCacheMiss
	GetList(ctx context.Context, key string) ([][]byte, error)
	// SetList 原子地替换整个列表：读方要么看到完整的新列表，要么看不到
	SetList(ctx context.Context, key string, values [][]byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Serializer encodes cached values
type Serializer interface {
	Serialize(v any) ([]byte, error)
	Deserialize(data []byte, v any) error
	Name() string
}
