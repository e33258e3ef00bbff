package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics counts requests, latency and in-flight
type HTTPMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	var m HTTPMetrics
	var errs [3]error
	m.requests, errs[0] = meter.Int64Counter("http_requests_total",
		metric.WithDescription("HTTP 请求总数"), metric.WithUnit("{request}"))
	m.duration, errs[1] = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP 请求耗时"), metric.WithUnit("s"))
	m.inFlight, errs[2] = meter.Int64UpDownCounter("http_requests_in_flight",
		metric.WithDescription("处理中的请求数"), metric.WithUnit("{request}"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return &m, nil
}

// Handler 按路由模板打标签，未匹配路由统一记为 unmatched
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.inFlight.Add(ctx, 1)
		defer m.inFlight.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.Int("status_code", status),
			attribute.String("status_class", strconv.Itoa(status/100)+"xx"),
		)
		m.requests.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}
