package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/httpx"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/middleware"
	"github.com/KOMKZ/go-yogan-content/telemetry"
)

// HTTPServer 封装 gin.Engine 与 http.Server
type HTTPServer struct {
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	cfg        ApiServerConfig
	logger     *logger.CtxZapLogger
}

// NewHTTPServer 创建 gin 引擎并按顺序挂载中间件
// otelgin 在 TraceID 之前，TraceID 才能取到 span 的 trace id
func NewHTTPServer(cfg ApiServerConfig, mw MiddlewareConfig, httpxCfg *httpx.ErrorLoggingConfig, tel *telemetry.Manager, log *logger.CtxZapLogger) (*HTTPServer, error) {
	if log == nil {
		log = logger.GetLogger("http")
	}

	gin.DefaultWriter = logger.NewGinLogWriter(logger.GetLogger("gin"))
	gin.DefaultErrorWriter = logger.NewGinLogWriter(logger.GetLogger("gin"))
	gin.SetMode(cfg.Mode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	if mw.CORS.Enabled {
		engine.Use(middleware.CORS(mw.CORS))
	}

	if tel != nil && tel.IsEnabled() {
		engine.Use(otelgin.Middleware(tel.GetConfig().ServiceName,
			otelgin.WithTracerProvider(tel.TracerProvider())))
		log.Debug("OpenTelemetry trace middleware registered",
			zap.String("service_name", tel.GetConfig().ServiceName))
	}

	engine.Use(middleware.TraceID(mw.TraceID.TraceConfig()))

	if tel != nil {
		metrics, err := middleware.NewHTTPMetrics(tel.Meter("http"))
		if err != nil {
			return nil, fmt.Errorf("create http metrics: %w", err)
		}
		engine.Use(metrics.Handler())
	}

	engine.Use(middleware.RequestLog(logger.GetLogger("gin-http"), mw.RequestLog))

	if httpxCfg != nil && httpxCfg.Enable {
		engine.Use(httpx.ErrorLoggingMiddleware(*httpxCfg))
	}

	engine.Use(middleware.Recovery(logger.GetLogger("gin-error")))

	engine.NoRoute(httpx.NoRouteHandler())
	engine.NoMethod(httpx.NoMethodHandler())

	return &HTTPServer{
		engine: engine,
		cfg:    cfg,
		logger: log,
	}, nil
}

// GetEngine for route registration
func (s *HTTPServer) GetEngine() *gin.Engine {
	return s.engine
}

// Listen 绑定端口；端口为 0 时由系统分配，Addr 返回实际地址
func (s *HTTPServer) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("端口 %d 不可用: %w", s.cfg.Port, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	return nil
}

// Addr is empty before Listen
func (s *HTTPServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve blocks until Shutdown; a clean shutdown returns nil
func (s *HTTPServer) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.logger.Info("HTTP server starting",
		zap.String("addr", s.Addr()),
		zap.String("mode", s.cfg.Mode))

	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP 服务启动失败: %w", err)
	}
	return nil
}

// Shutdown 优雅关闭，等待进行中的请求结束
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Debug("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP Server 关闭失败: %w", err)
	}
	s.logger.Info("HTTP server closed")
	return nil
}
