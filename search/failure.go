package search

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// failureRecorder 记录被折叠的失败：WARN 日志 + search_failures_total
type failureRecorder struct {
	logger   *logger.CtxZapLogger
	failures metric.Int64Counter
}

func newFailureRecorder(log *logger.CtxZapLogger, meter metric.Meter) failureRecorder {
	if log == nil {
		log = logger.GetLogger("search")
	}
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("search")
	}
	counter, err := meter.Int64Counter("search_failures_total",
		metric.WithDescription("Search store failures reported to callers as absent"))
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter("search").Int64Counter("search_failures_total")
	}
	return failureRecorder{logger: log, failures: counter}
}

// ReportFailure 实现 FailureReporter
func (r failureRecorder) ReportFailure(ctx context.Context, op, index string, err error) {
	r.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("index", index),
	))
	r.logger.WarnCtx(ctx, "search failure treated as absent",
		zap.String("op", op), zap.String("index", index), zap.Error(err))
}
