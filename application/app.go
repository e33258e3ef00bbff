// Package application 组装内容服务：配置、日志、依赖注入、HTTP 服务与生命周期
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/config"
	"github.com/KOMKZ/go-yogan-content/handler"
	"github.com/KOMKZ/go-yogan-content/health"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/middleware"
	"github.com/KOMKZ/go-yogan-content/retry"
	"github.com/KOMKZ/go-yogan-content/search"
	"github.com/KOMKZ/go-yogan-content/service"
	"github.com/KOMKZ/go-yogan-content/swagger"
	"github.com/KOMKZ/go-yogan-content/telemetry"
)

// AppState lifecycle state
type AppState int

const (
	StateInit AppState = iota
	StateSetup
	StateRunning
	StateStopping
	StateStopped
)

func (s AppState) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateSetup:
		return "Setup"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Options 创建 App 的参数
// Config 非空时直接使用，不再读取配置目录（测试用）
type Options struct {
	ConfigDir    string
	EnvPrefix    string
	Flags        *pflag.FlagSet
	FlagBindings map[string]string
	Version      string
	Config       *AppConfig
}

// App 内容服务应用
type App struct {
	opts     Options
	cfg      *AppConfig
	injector *do.RootScope
	routers  *RouterManager
	server   *HTTPServer
	logger   *logger.CtxZapLogger

	cache   *cache.ModelCache
	store   search.Store
	monitor *health.Monitor

	mu    sync.RWMutex
	state AppState
}

func New(opts Options) *App {
	return &App{
		opts:     opts,
		injector: do.New(),
		routers:  NewRouterManager(),
		logger:   logger.GetLogger("yogan"),
		state:    StateInit,
	}
}

// Routers must be added before Setup
func (a *App) Routers() *RouterManager { return a.routers }

func (a *App) Config() *AppConfig { return a.cfg }

func (a *App) Injector() *do.RootScope { return a.injector }

func (a *App) Logger() *logger.CtxZapLogger { return a.logger }

func (a *App) State() AppState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *App) setState(s AppState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Services returns the entity read services
func (a *App) Services() (*service.Services, error) {
	return do.Invoke[*service.Services](a.injector)
}

// Engine is available after Setup
func (a *App) Engine() *gin.Engine {
	if a.server == nil {
		return nil
	}
	return a.server.GetEngine()
}

// Addr is the bound address after Start
func (a *App) Addr() string {
	if a.server == nil {
		return ""
	}
	return a.server.Addr()
}

// LoadConfig reads the config dir, environment and flags
func (a *App) LoadConfig() (*AppConfig, error) {
	if a.opts.Config != nil {
		a.opts.Config.ApplyDefaults()
		if err := a.opts.Config.Validate(); err != nil {
			return nil, err
		}
		return a.opts.Config, nil
	}

	builder := config.NewLoaderBuilder().
		WithConfigPath(a.opts.ConfigDir).
		WithEnvPrefix(a.opts.EnvPrefix)
	if a.opts.Flags != nil {
		builder.WithFlags(a.opts.Flags, a.opts.FlagBindings)
	}
	loader, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	cfg, err := LoadAppConfig(loader)
	if err != nil {
		return nil, err
	}
	if a.opts.Version != "" && cfg.App.Version == "" {
		cfg.App.Version = a.opts.Version
	}
	a.logger.Debug("config loaded", zap.Strings("files", loader.LoadedFiles()))
	return cfg, nil
}

// Setup 加载配置、初始化日志、连接后端并注册路由
// 缓存或检索连接失败直接返回错误，不启动服务
func (a *App) Setup(ctx context.Context) error {
	a.setState(StateSetup)

	cfg, err := a.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.InitManager(*cfg.Logger)
	a.logger = logger.GetLogger("yogan")
	a.logger.InfoCtx(ctx, "应用初始化中...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", config.GetEnv()))

	registerProviders(a.injector, cfg)

	tel, err := do.Invoke[*telemetry.Manager](a.injector)
	if err != nil {
		return err
	}

	if err := a.connectBackends(ctx); err != nil {
		return err
	}

	svcs, err := do.Invoke[*service.Services](a.injector)
	if err != nil {
		return err
	}

	a.server, err = NewHTTPServer(cfg.ApiServer, cfg.Middleware, cfg.Httpx, tel, logger.GetLogger("http"))
	if err != nil {
		return err
	}
	engine := a.server.GetEngine()

	if cfg.Health.Enabled {
		reporter, err := a.healthReporter()
		if err != nil {
			return err
		}
		middleware.RegisterHealthRoutes(engine, reporter)
	}

	if sw := do.MustInvoke[*swagger.Manager](a.injector); sw != nil {
		sw.RegisterRoutes(engine)
	}

	handler.Register(engine, svcs)

	if err := a.routers.Register(engine, a); err != nil {
		return fmt.Errorf("注册路由失败: %w", err)
	}
	return nil
}

// connectBackends 创建并 ping 缓存与检索；配置了 startup.wait_timeout 时失败会退避重试
// provider 失败不会被容器缓存，重试时会重新创建连接
func (a *App) connectBackends(ctx context.Context) error {
	wait := a.cfg.Startup.WaitTimeout

	c, err := retry.DoWithData(ctx, func(ctx context.Context) (*cache.ModelCache, error) {
		c, err := do.Invoke[*cache.ModelCache](a.injector)
		if err != nil {
			return nil, err
		}
		if err := c.Ping(ctx); err != nil {
			return nil, fmt.Errorf("cache %s unreachable: %w", c.Engine().Name(), err)
		}
		return c, nil
	}, retry.WaitOptions(wait, a.logRetry("cache"))...)
	if err != nil {
		return fmt.Errorf("初始化缓存失败: %w", err)
	}
	a.cache = c
	a.logger.InfoCtx(ctx, "Cache connected",
		zap.String("engine", c.Engine().Name()),
		zap.String("serializer", c.Serializer().Name()))

	store, err := do.Invoke[search.Store](a.injector)
	if err != nil {
		return fmt.Errorf("初始化检索失败: %w", err)
	}
	a.store = store
	err = retry.Do(ctx, func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("search %s unreachable: %w", store.Name(), err)
		}
		return nil
	}, retry.WaitOptions(wait, a.logRetry("search"))...)
	if err != nil {
		return fmt.Errorf("初始化检索失败: %w", err)
	}
	a.logger.InfoCtx(ctx, "Search store connected", zap.String("engine", store.Name()))
	return nil
}

func (a *App) logRetry(backend string) func(int, error, time.Duration) {
	return func(attempt int, err error, delay time.Duration) {
		a.logger.Warn("backend not ready, retrying",
			zap.String("backend", backend),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}
}

func (a *App) healthReporter() (middleware.HealthReporter, error) {
	monitor, err := do.Invoke[*health.Monitor](a.injector)
	if err != nil {
		return nil, err
	}
	if monitor != nil {
		a.monitor = monitor
		monitor.Start()
		return monitor, nil
	}
	return do.Invoke[*health.Aggregator](a.injector)
}

// Ping checks every backend and fails on the first error
func (a *App) Ping(ctx context.Context) (*health.Response, error) {
	agg, err := do.Invoke[*health.Aggregator](a.injector)
	if err != nil {
		return nil, err
	}
	resp := agg.Check(ctx)
	if !resp.IsHealthy() {
		return resp, fmt.Errorf("health status %s", resp.Status)
	}
	return resp, nil
}

// Start binds and serves in the background; use port 0 in tests
func (a *App) Start() error {
	if a.server == nil {
		return errors.New("app not set up")
	}
	if err := a.server.Listen(); err != nil {
		return err
	}
	a.setState(StateRunning)
	go func() {
		if err := a.server.Serve(); err != nil {
			a.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Run blocks until ctx is done or the server fails, then shuts down
func (a *App) Run(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	if err := a.server.Listen(); err != nil {
		return err
	}
	a.setState(StateRunning)
	a.logger.Info("应用启动完成",
		zap.String("name", a.cfg.App.Name),
		zap.String("addr", a.server.Addr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("收到退出信号，开始优雅关闭")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ApiServer.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Shutdown stops accepting requests, then closes backends
func (a *App) Shutdown(ctx context.Context) error {
	if a.State() == StateStopped || a.State() == StateStopping {
		return nil
	}
	a.setState(StateStopping)

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.monitor != nil {
		if err := a.monitor.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop health monitor: %w", err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close search: %w", err))
		}
	}
	// redis 连接与 telemetry 由容器按依赖逆序关闭
	if err := a.injector.ShutdownWithContext(ctx); err != nil {
		a.logger.Warn("injector shutdown 失败", zap.Error(err))
	}

	a.setState(StateStopped)
	a.logger.Info("应用已关闭")
	logger.CloseAll()
	return errors.Join(errs...)
}
