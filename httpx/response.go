// Package httpx 提供 HTTP 请求/响应的统一处理
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KOMKZ/go-yogan-content/errcode"
	"github.com/KOMKZ/go-yogan-content/logger"
)

// Response is the JSON envelope
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

// OkJson writes a 200 envelope
func OkJson(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// NotFoundJson 404
func NotFoundJson(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{
		Code: http.StatusNotFound,
		Msg:  msg,
	})
}

// InternalErrorJson 500，不向外暴露内部错误
func InternalErrorJson(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: http.StatusInternalServerError,
		Msg:  msg,
	})
}

// NoRouteHandler for engine.NoRoute()
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		NotFoundJson(c, "路由不存在: "+c.Request.Method+" "+c.Request.URL.Path)
	}
}

// NoMethodHandler for engine.NoMethod()
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, Response{
			Code: http.StatusMethodNotAllowed,
			Msg:  "方法不允许: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	}
}

// HandleError 按错误类型返回状态码
// LayeredError 返回其 HTTP 状态、错误码和消息；其它错误一律 500，细节只进日志
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	policy := policyFrom(c)

	var layeredErr *errcode.LayeredError
	if !errors.As(err, &layeredErr) {
		if policy.enabled {
			logger.GetLogger("httpx").ErrorCtx(c.Request.Context(), "unhandled error",
				zap.Error(err), zap.String("path", c.Request.URL.Path))
		}
		InternalErrorJson(c, http.StatusText(http.StatusInternalServerError))
		return
	}

	status := layeredErr.HTTPStatus()
	if policy.logs(status) {
		fields := []zap.Field{
			zap.Int("error_code", layeredErr.Code()),
			zap.String("error_msg", layeredErr.Message()),
			zap.Int("status", status),
			zap.String("path", c.Request.URL.Path),
		}
		if policy.fullChain {
			fields = append(fields, zap.Error(err))
		}
		logAt(c, policy.level, fields)
	}

	c.JSON(status, Response{
		Code: layeredErr.Code(),
		Msg:  layeredErr.Message(),
		Data: layeredErr.Data(),
	})
}

func logAt(c *gin.Context, level zapcore.Level, fields []zap.Field) {
	log := logger.GetLogger("httpx")
	ctx := c.Request.Context()
	switch level {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		log.InfoCtx(ctx, "request failed", fields...)
	case zapcore.WarnLevel:
		log.WarnCtx(ctx, "request failed", fields...)
	default:
		log.ErrorCtx(ctx, "request failed", fields...)
	}
}
