package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/KOMKZ/go-yogan-content/logger"
)

const (
	TraceIDKeyDefault    = "trace_id"
	TraceIDHeaderDefault = "X-Trace-ID"

	// 上游传入的 ID 会原样写进日志，超长或含奇怪字符的直接丢弃重新生成
	maxInboundTraceID = 128
)

// TraceConfig Trace 中间件配置
type TraceConfig struct {
	TraceIDKey    string
	TraceIDHeader string
	// EnableResponseHeader echoes the TraceID in the response
	EnableResponseHeader bool
}

func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		TraceIDKey:           TraceIDKeyDefault,
		TraceIDHeader:        TraceIDHeaderDefault,
		EnableResponseHeader: true,
	}
}

// TraceID 为每个请求确定一个 TraceID：
// 有效的 OTel span 优先，其次是请求头，最后生成 UUID
func TraceID(cfg TraceConfig) gin.HandlerFunc {
	def := DefaultTraceConfig()
	if cfg.TraceIDKey == "" {
		cfg.TraceIDKey = def.TraceIDKey
	}
	if cfg.TraceIDHeader == "" {
		cfg.TraceIDHeader = def.TraceIDHeader
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := ""
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			id = sc.TraceID().String()
		} else {
			if id = c.GetHeader(cfg.TraceIDHeader); !validTraceID(id) {
				id = uuid.NewString()
			}
			c.Request = c.Request.WithContext(logger.WithTraceID(ctx, id))
		}

		c.Set(cfg.TraceIDKey, id)
		if cfg.EnableResponseHeader {
			c.Header(cfg.TraceIDHeader, id)
		}
		c.Next()
	}
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxInboundTraceID {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}

// GetTraceID reads the default key
func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceIDKeyDefault)
}
