package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// Stats is a counters snapshot
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// ModelCache 模型缓存：引擎 + 序列化 + 日志 + 指标
// 引擎错误原样返回给调用方，未命中不算错误
type ModelCache struct {
	engine     Engine
	serializer Serializer
	logger     *logger.CtxZapLogger

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64

	hitCounter   metric.Int64Counter
	missCounter  metric.Int64Counter
	errorCounter metric.Int64Counter
}

// Option configures ModelCache
type Option func(*ModelCache)

// WithSerializer replaces the default JSON serializer
func WithSerializer(s Serializer) Option {
	return func(c *ModelCache) {
		if s != nil {
			c.serializer = s
		}
	}
}

// WithMeter registers hit/miss/error counters; noop when unset
func WithMeter(meter metric.Meter) Option {
	return func(c *ModelCache) {
		if meter == nil {
			return
		}
		if ctr, err := meter.Int64Counter("cache_hits_total",
			metric.WithDescription("Model cache hits")); err == nil {
			c.hitCounter = ctr
		}
		if ctr, err := meter.Int64Counter("cache_misses_total",
			metric.WithDescription("Model cache misses")); err == nil {
			c.missCounter = ctr
		}
		if ctr, err := meter.Int64Counter("cache_errors_total",
			metric.WithDescription("Model cache engine and codec errors")); err == nil {
			c.errorCounter = ctr
		}
	}
}

// NewModelCache wraps engine
func NewModelCache(engine Engine, log *logger.CtxZapLogger, opts ...Option) *ModelCache {
	if log == nil {
		log = logger.GetLogger("cache")
	}
	nop := noop.NewMeterProvider().Meter("cache")
	hits, _ := nop.Int64Counter("cache_hits_total")
	misses, _ := nop.Int64Counter("cache_misses_total")
	errs, _ := nop.Int64Counter("cache_errors_total")

	c := &ModelCache{
		engine:       engine,
		serializer:   NewJSONSerializer(),
		logger:       log,
		hitCounter:   hits,
		missCounter:  misses,
		errorCounter: errs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the backend
func (c *ModelCache) Engine() Engine { return c.engine }

// Serializer in use
func (c *ModelCache) Serializer() Serializer { return c.serializer }

// Stats 统计快照
func (c *ModelCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errs.Load(),
	}
}

// Ping checks the engine
func (c *ModelCache) Ping(ctx context.Context) error {
	return c.engine.Ping(ctx)
}

// Close closes the engine
func (c *ModelCache) Close() error {
	return c.engine.Close()
}

// Name implements health.Checker
func (c *ModelCache) Name() string { return "cache" }

// Check implements health.Checker
func (c *ModelCache) Check(ctx context.Context) error { return c.Ping(ctx) }

func (c *ModelCache) recordHit(ctx context.Context, key string) {
	c.hits.Add(1)
	c.hitCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("prefix", KeyPrefix(key))))
}

func (c *ModelCache) recordMiss(ctx context.Context, key string) {
	c.misses.Add(1)
	c.missCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("prefix", KeyPrefix(key))))
}

func (c *ModelCache) recordError(ctx context.Context, key, op string) {
	c.errs.Add(1)
	c.errorCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("prefix", KeyPrefix(key)),
		attribute.String("op", op),
	))
}

func (c *ModelCache) getRaw(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.engine.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			c.recordMiss(ctx, key)
			return nil, false, nil
		}
		c.recordError(ctx, key, "get")
		c.logger.ErrorCtx(ctx, "cache get failed",
			zap.String("key", key), zap.String("engine", c.engine.Name()), zap.Error(err))
		return nil, false, err
	}
	c.recordHit(ctx, key)
	return data, true, nil
}

func (c *ModelCache) getRawList(ctx context.Context, key string) ([][]byte, bool, error) {
	items, err := c.engine.GetList(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			c.recordMiss(ctx, key)
			return nil, false, nil
		}
		c.recordError(ctx, key, "get_list")
		c.logger.ErrorCtx(ctx, "cache get list failed",
			zap.String("key", key), zap.String("engine", c.engine.Name()), zap.Error(err))
		return nil, false, err
	}
	c.recordHit(ctx, key)
	return items, true, nil
}

func (c *ModelCache) decodeFailed(ctx context.Context, key string, err error) error {
	c.recordError(ctx, key, "decode")
	c.logger.ErrorCtx(ctx, "cache decode failed", zap.String("key", key), zap.Error(err))
	return ErrDeserialize.Wrap(err)
}

func (c *ModelCache) encodeFailed(ctx context.Context, key string, value any, err error) error {
	c.recordError(ctx, key, "encode")
	c.logger.ErrorCtx(ctx, "cache encode failed",
		zap.String("key", key), zap.Any("value", value), zap.Error(err))
	return ErrSerialize.Wrap(err)
}

func (c *ModelCache) setFailed(ctx context.Context, key string, value any, err error) error {
	c.recordError(ctx, key, "set")
	c.logger.ErrorCtx(ctx, "cache set failed",
		zap.String("key", key), zap.String("engine", c.engine.Name()),
		zap.Any("value", value), zap.Error(err))
	return err
}

// GetOne 读取单个实体，未命中返回 (零值, false, nil)
func GetOne[T any](ctx context.Context, c *ModelCache, key string) (T, bool, error) {
	var zero T
	data, ok, err := c.getRaw(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	var v T
	if err := c.serializer.Deserialize(data, &v); err != nil {
		return zero, false, c.decodeFailed(ctx, key, err)
	}
	return v, true, nil
}

// SetOne stores one entity under key
func SetOne[T any](ctx context.Context, c *ModelCache, key string, value T, ttl time.Duration) error {
	data, err := c.serializer.Serialize(value)
	if err != nil {
		return c.encodeFailed(ctx, key, value, err)
	}
	if err := c.engine.Set(ctx, key, data, ttl); err != nil {
		return c.setFailed(ctx, key, value, err)
	}
	return nil
}

// GetList 读取实体列表，保持写入顺序；key 不存在或列表为空都视为未命中
func GetList[T any](ctx context.Context, c *ModelCache, key string) ([]T, bool, error) {
	items, ok, err := c.getRawList(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	out := make([]T, 0, len(items))
	for _, data := range items {
		var v T
		if err := c.serializer.Deserialize(data, &v); err != nil {
			return nil, false, c.decodeFailed(ctx, key, err)
		}
		out = append(out, v)
	}
	return out, true, nil
}

// SetList 整体写入实体列表，空列表不写
func SetList[T any](ctx context.Context, c *ModelCache, key string, values []T, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}
	items := make([][]byte, 0, len(values))
	for _, v := range values {
		data, err := c.serializer.Serialize(v)
		if err != nil {
			return c.encodeFailed(ctx, key, v, err)
		}
		items = append(items, data)
	}
	if err := c.engine.SetList(ctx, key, items, ttl); err != nil {
		return c.setFailed(ctx, key, values, err)
	}
	return nil
}
