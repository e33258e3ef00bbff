package application

import (
	"fmt"
	"time"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/config"
	"github.com/KOMKZ/go-yogan-content/health"
	"github.com/KOMKZ/go-yogan-content/httpx"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/middleware"
	"github.com/KOMKZ/go-yogan-content/redis"
	"github.com/KOMKZ/go-yogan-content/search"
	"github.com/KOMKZ/go-yogan-content/swagger"
	"github.com/KOMKZ/go-yogan-content/telemetry"
)

// AppConfig is the whole configuration
// Redis holds named instances; cache.redis_instance picks one
type AppConfig struct {
	App        AppInfo                   `mapstructure:"app"`
	ApiServer  ApiServerConfig           `mapstructure:"api_server"`
	Logger     *logger.ManagerConfig     `mapstructure:"logger,omitempty"`
	Middleware MiddlewareConfig          `mapstructure:"middleware"`
	Httpx      *httpx.ErrorLoggingConfig `mapstructure:"httpx,omitempty"`
	Redis      map[string]redis.Config   `mapstructure:"redis"`
	Cache      cache.Config              `mapstructure:"cache"`
	Search     search.Config             `mapstructure:"search"`
	Telemetry  telemetry.Config          `mapstructure:"telemetry"`
	Health     health.Config             `mapstructure:"health"`
	Swagger    swagger.Config            `mapstructure:"swagger"`
	Startup    StartupConfig             `mapstructure:"startup"`
}

// StartupConfig 启动阶段
// WaitTimeout > 0 时以指数退避等待缓存与检索就绪，适合与后端同时启动的容器
type StartupConfig struct {
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
}

// AppInfo metadata
type AppInfo struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ApiServerConfig HTTP 服务配置
type ApiServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr listen address
func (c ApiServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MiddlewareConfig 中间件配置
type MiddlewareConfig struct {
	CORS       middleware.CORSConfig       `mapstructure:"cors"`
	TraceID    TraceIDConfig               `mapstructure:"trace_id"`
	RequestLog middleware.RequestLogConfig `mapstructure:"request_log"`
}

// TraceIDConfig TraceID 中间件配置
type TraceIDConfig struct {
	TraceIDKey           string `mapstructure:"trace_id_key"`
	TraceIDHeader        string `mapstructure:"trace_id_header"`
	EnableResponseHeader *bool  `mapstructure:"enable_response_header"`
}

// ApplyDefaults fills every section
func (c *AppConfig) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "content-api"
	}
	if c.ApiServer.Port == 0 {
		c.ApiServer.Port = 8080
	}
	if c.ApiServer.Mode == "" {
		c.ApiServer.Mode = "release"
	}
	if c.ApiServer.ReadTimeout == 0 {
		c.ApiServer.ReadTimeout = 10 * time.Second
	}
	if c.ApiServer.WriteTimeout == 0 {
		c.ApiServer.WriteTimeout = 10 * time.Second
	}
	if c.ApiServer.ShutdownTimeout == 0 {
		c.ApiServer.ShutdownTimeout = 10 * time.Second
	}

	if c.Logger == nil {
		d := logger.DefaultManagerConfig()
		c.Logger = &d
	}
	c.Logger.ApplyDefaults()
	if c.Logger.AppName == "" {
		c.Logger.AppName = c.App.Name
	}

	if c.Httpx == nil {
		d := httpx.DefaultErrorLoggingConfig()
		c.Httpx = &d
	}

	if c.Middleware.TraceID.TraceIDKey == "" {
		c.Middleware.TraceID.TraceIDKey = middleware.TraceIDKeyDefault
	}
	if c.Middleware.TraceID.TraceIDHeader == "" {
		c.Middleware.TraceID.TraceIDHeader = middleware.TraceIDHeaderDefault
	}
	if len(c.Middleware.RequestLog.SkipPaths) == 0 {
		c.Middleware.RequestLog.SkipPaths = []string{"/health", "/health/live"}
	}

	c.Cache.ApplyDefaults()
	c.Search.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.App.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.App.Version
	}
	c.Telemetry.ApplyDefaults()
	if c.Health.Timeout == 0 {
		c.Health.Timeout = health.DefaultConfig().Timeout
	}
	c.Swagger.ApplyDefaults()
	if c.Swagger.Info.Title == "" {
		c.Swagger.Info.Title = c.App.Name + " API"
	}
	if c.Swagger.Info.Version == "" {
		c.Swagger.Info.Version = c.App.Version
	}
}

// Validate checks every section
func (c *AppConfig) Validate() error {
	if c.ApiServer.Port < 0 || c.ApiServer.Port > 65535 {
		return fmt.Errorf("api_server.port out of range: %d", c.ApiServer.Port)
	}
	if c.Startup.WaitTimeout < 0 {
		return fmt.Errorf("startup.wait_timeout must not be negative")
	}
	validators := []config.Validator{c.Logger, &c.Cache, &c.Search, &c.Telemetry, c.Swagger}
	for name, rc := range c.Redis {
		rc.ApplyDefaults()
		if err := rc.Validate(); err != nil {
			return fmt.Errorf("redis.%s: %w", name, err)
		}
	}
	if c.Cache.Engine == "redis" {
		if _, ok := c.Redis[c.Cache.RedisInstance]; !ok {
			return fmt.Errorf("cache.redis_instance %q not found in redis", c.Cache.RedisInstance)
		}
	}
	return config.ValidateAll(validators...)
}

// TraceConfig converts to the middleware config
func (c TraceIDConfig) TraceConfig() middleware.TraceConfig {
	cfg := middleware.DefaultTraceConfig()
	if c.TraceIDKey != "" {
		cfg.TraceIDKey = c.TraceIDKey
	}
	if c.TraceIDHeader != "" {
		cfg.TraceIDHeader = c.TraceIDHeader
	}
	if c.EnableResponseHeader != nil {
		cfg.EnableResponseHeader = *c.EnableResponseHeader
	}
	return cfg
}

// LoadAppConfig 从 Loader 解析并填充默认值、校验
func LoadAppConfig(loader *config.Loader) (*AppConfig, error) {
	var cfg AppConfig
	if err := loader.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
