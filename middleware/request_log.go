package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// RequestLogConfig HTTP 请求日志配置
type RequestLogConfig struct {
	// SkipPaths are not logged
	SkipPaths []string `mapstructure:"skip_paths"`
}

func DefaultRequestLogConfig() RequestLogConfig {
	return RequestLogConfig{SkipPaths: []string{}}
}

// RequestLog 结构化请求日志，替代 gin.Logger()
// 500+ 记 Error，400+ 记 Warn，其余 Info；TraceID 通过 context 自动关联
func RequestLog(log *logger.CtxZapLogger, cfg RequestLogConfig) gin.HandlerFunc {
	if log == nil {
		log = logger.GetLogger("http")
	}
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("body_size", c.Writer.Size()),
		}
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			fields = append(fields, zap.String("error", msg))
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.ErrorCtx(ctx, "HTTP 请求", fields...)
		case status >= 400:
			log.WarnCtx(ctx, "HTTP 请求", fields...)
		default:
			log.InfoCtx(ctx, "HTTP 请求", fields...)
		}
	}
}
