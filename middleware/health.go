package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/health"
)

// HealthReporter health.Aggregator 与 health.Monitor 都满足
type HealthReporter interface {
	Check(ctx context.Context) *health.Response
}

// HealthCheckHandler 健康检查 HTTP Handler
type HealthCheckHandler struct {
	reporter HealthReporter
}

func NewHealthCheckHandler(reporter HealthReporter) *HealthCheckHandler {
	return &HealthCheckHandler{reporter: reporter}
}

// Handle GET /health，不健康返回 503，降级仍返回 200
func (h *HealthCheckHandler) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := h.reporter.Check(c.Request.Context())
		status := http.StatusOK
		if resp.Status == health.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}

// HandleLiveness 存活探针，不检查依赖
func (h *HealthCheckHandler) HandleLiveness() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	}
}

// RegisterHealthRoutes 注册 /health 与 /health/live
func RegisterHealthRoutes(router gin.IRouter, reporter HealthReporter) {
	if reporter == nil {
		return
	}
	h := NewHealthCheckHandler(reporter)
	router.GET("/health", h.Handle())
	router.GET("/health/live", h.HandleLiveness())
}
