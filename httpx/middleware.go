package httpx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
)

const errorPolicyKey = "httpx:error_policy"

// errorPolicy 是 ErrorLoggingConfig 预处理后的形态，每个请求只做查表
type errorPolicy struct {
	enabled   bool
	ignored   map[int]struct{}
	fullChain bool
	level     zapcore.Level
}

func newErrorPolicy(cfg ErrorLoggingConfig) errorPolicy {
	p := errorPolicy{
		enabled:   cfg.Enable,
		ignored:   make(map[int]struct{}, len(cfg.IgnoreHTTPStatus)),
		fullChain: cfg.FullErrorChain,
		level:     zapcore.ErrorLevel,
	}
	for _, status := range cfg.IgnoreHTTPStatus {
		p.ignored[status] = struct{}{}
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		p.level = lvl
	}
	return p
}

// logs reports whether an error with this status is logged
func (p errorPolicy) logs(status int) bool {
	if !p.enabled {
		return false
	}
	_, skip := p.ignored[status]
	return !skip
}

// ErrorLoggingMiddleware 把错误日志策略挂到请求上，HandleError 据此决定是否记录
func ErrorLoggingMiddleware(cfg ErrorLoggingConfig) gin.HandlerFunc {
	policy := newErrorPolicy(cfg)
	return func(c *gin.Context) {
		c.Set(errorPolicyKey, policy)
		c.Next()
	}
}

// 未挂中间件时不记录
func policyFrom(c *gin.Context) errorPolicy {
	if v, ok := c.Get(errorPolicyKey); ok {
		if p, ok := v.(errorPolicy); ok {
			return p
		}
	}
	return errorPolicy{fullChain: true, level: zapcore.ErrorLevel}
}
