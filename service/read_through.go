// Package service 实体读取服务：先查缓存，未命中时查检索服务并回填缓存
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/search"
)

// base 各实体服务共享的依赖
type base struct {
	cache  *cache.ModelCache
	store  search.Store
	index  string
	prefix string
	ttl    time.Duration
	logger *logger.CtxZapLogger
}

func newBase(c *cache.ModelCache, store search.Store, index, prefix string, ttl time.Duration, log *logger.CtxZapLogger) base {
	if log == nil {
		log = logger.GetLogger("service")
	}
	return base{cache: c, store: store, index: index, prefix: prefix, ttl: ttl, logger: log}
}

// Prefix 缓存 key 前缀
func (b *base) Prefix() string { return b.prefix }

// Index 检索索引
func (b *base) Index() string { return b.index }

// TTL 缓存有效期
func (b *base) TTL() time.Duration { return b.ttl }

func (b *base) key(parts ...any) string {
	return cache.BuildKey(b.prefix, parts...)
}

// readThrough 单个实体的读穿透
// 缓存出错直接返回错误，不查检索服务；检索不到返回 (零值, false, nil)
// 同一 key 的并发冷读可能都去查检索服务并各自回填，结果相同
func readThrough[T any](ctx context.Context, b *base, key string, fetch func(context.Context) (T, bool)) (T, bool, error) {
	var zero T

	v, ok, err := cache.GetOne[T](ctx, b.cache, key)
	if err != nil {
		return zero, false, err
	}
	if ok {
		b.logger.DebugCtx(ctx, "cache hit", zap.String("key", key))
		return v, true, nil
	}
	b.logger.DebugCtx(ctx, "cache miss", zap.String("key", key))

	v, ok = fetch(ctx)
	if !ok {
		b.logger.DebugCtx(ctx, "not found in store", zap.String("key", key), zap.String("index", b.index))
		return zero, false, nil
	}

	if err := cache.SetOne(ctx, b.cache, key, v, b.ttl); err != nil {
		return zero, false, err
	}
	b.logger.DebugCtx(ctx, "cache filled", zap.String("key", key), zap.Duration("ttl", b.ttl))
	return v, true, nil
}

// readThroughList 实体列表的读穿透，列表整体写入、保持顺序
func readThroughList[T any](ctx context.Context, b *base, key string, fetch func(context.Context) ([]T, bool)) ([]T, bool, error) {
	items, ok, err := cache.GetList[T](ctx, b.cache, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		b.logger.DebugCtx(ctx, "cache hit", zap.String("key", key), zap.Int("items", len(items)))
		return items, true, nil
	}
	b.logger.DebugCtx(ctx, "cache miss", zap.String("key", key))

	items, ok = fetch(ctx)
	if !ok || len(items) == 0 {
		b.logger.DebugCtx(ctx, "not found in store", zap.String("key", key), zap.String("index", b.index))
		return nil, false, nil
	}

	if err := cache.SetList(ctx, b.cache, key, items, b.ttl); err != nil {
		return nil, false, err
	}
	b.logger.DebugCtx(ctx, "cache filled", zap.String("key", key),
		zap.Int("items", len(items)), zap.Duration("ttl", b.ttl))
	return items, true, nil
}
