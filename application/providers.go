package application

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/docs"
	"github.com/KOMKZ/go-yogan-content/health"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/redis"
	"github.com/KOMKZ/go-yogan-content/search"
	"github.com/KOMKZ/go-yogan-content/service"
	"github.com/KOMKZ/go-yogan-content/swagger"
	"github.com/KOMKZ/go-yogan-content/telemetry"
)

// registerProviders 按依赖层级注册，全部懒加载
func registerProviders(injector do.Injector, cfg *AppConfig) {
	// Layer 0: config
	do.ProvideValue(injector, cfg)

	// Layer 1: observability
	do.Provide(injector, ProvideTelemetryManager)

	// Layer 2: backends
	do.Provide(injector, ProvideRedisManager)
	do.Provide(injector, ProvideModelCache)
	do.Provide(injector, ProvideSearchStore)

	// Layer 3: services
	do.Provide(injector, ProvideServices)

	// Layer 4: health and docs
	do.Provide(injector, ProvideHealthAggregator)
	do.Provide(injector, ProvideHealthMonitor)
	do.Provide(injector, ProvideSwaggerManager)
}

// ProvideTelemetryManager 创建并启动 telemetry，未启用时 Meter 为 noop
func ProvideTelemetryManager(i do.Injector) (*telemetry.Manager, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	mgr := telemetry.NewManager(cfg.Telemetry, logger.GetLogger("telemetry"))
	if err := mgr.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("start telemetry: %w", err)
	}
	return mgr, nil
}

// ProvideRedisManager returns nil unless the cache uses the redis engine
func ProvideRedisManager(i do.Injector) (*redis.Manager, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	if cfg.Cache.Engine != "redis" || len(cfg.Redis) == 0 {
		return nil, nil
	}
	tel := do.MustInvoke[*telemetry.Manager](i)

	hook, err := redis.NewMetricsHook(tel.Meter("redis"), cfg.Cache.RedisInstance)
	if err != nil {
		return nil, err
	}
	return redis.NewManager(context.Background(), cfg.Redis, logger.GetLogger("redis"), hook)
}

// ProvideModelCache engine=redis 时使用 cache.redis_instance 对应的客户端
func ProvideModelCache(i do.Injector) (*cache.ModelCache, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	tel := do.MustInvoke[*telemetry.Manager](i)

	mgr, err := do.Invoke[*redis.Manager](i)
	if err != nil {
		return nil, err
	}
	var client goredis.UniversalClient
	if mgr != nil {
		client = mgr.Client(cfg.Cache.RedisInstance)
	}
	return cache.New(cfg.Cache, client, logger.GetLogger("cache"), tel.Meter("cache"))
}

func ProvideSearchStore(i do.Injector) (search.Store, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	tel := do.MustInvoke[*telemetry.Manager](i)
	return search.New(cfg.Search, logger.GetLogger("search"), tel.Meter("search"))
}

func ProvideServices(i do.Injector) (*service.Services, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	c, err := do.Invoke[*cache.ModelCache](i)
	if err != nil {
		return nil, err
	}
	store, err := do.Invoke[search.Store](i)
	if err != nil {
		return nil, err
	}
	return service.New(c, store, cfg.Cache.TTL, cfg.Search.Indexes, logger.GetLogger("service")), nil
}

// ProvideHealthAggregator 注册缓存、检索与 Redis 实例的检查项
// 缓存读失败会让读请求直接 500，所以三者都是关键项
func ProvideHealthAggregator(i do.Injector) (*health.Aggregator, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	agg := health.NewAggregator(cfg.Health.Timeout)
	agg.SetMetadata("app", cfg.App.Name)
	if cfg.App.Version != "" {
		agg.SetMetadata("version", cfg.App.Version)
	}

	c, err := do.Invoke[*cache.ModelCache](i)
	if err != nil {
		return nil, err
	}
	store, err := do.Invoke[search.Store](i)
	if err != nil {
		return nil, err
	}
	agg.Register(c, search.NewHealthChecker(store))

	if mgr := do.MustInvoke[*redis.Manager](i); mgr != nil {
		agg.Register(redis.NewHealthChecker(mgr))
	}
	return agg, nil
}

// ProvideHealthMonitor health.interval 为 0 时返回 nil，/health 每次实时检查
func ProvideHealthMonitor(i do.Injector) (*health.Monitor, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	if cfg.Health.Interval <= 0 {
		return nil, nil
	}
	agg := do.MustInvoke[*health.Aggregator](i)
	return health.NewMonitor(agg, cfg.Health.Interval, logger.GetLogger("health"))
}

// ProvideSwaggerManager returns nil when disabled
func ProvideSwaggerManager(i do.Injector) (*swagger.Manager, error) {
	cfg := do.MustInvoke[*AppConfig](i)
	if !cfg.Swagger.Enabled {
		return nil, nil
	}
	mgr := swagger.NewManager(cfg.Swagger, cfg.Swagger.Info, logger.GetLogger("swagger"))
	mgr.SetupInfo(docs.SwaggerInfo)
	return mgr, nil
}
