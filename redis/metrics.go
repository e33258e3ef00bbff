package redis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsHook is a redis.Hook recording command count, latency and errors.
// redis.Nil is a normal miss and is not counted as an error.
type MetricsHook struct {
	instance string
	commands metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetricsHook registers the instruments on meter
func NewMetricsHook(meter metric.Meter, instance string) (*MetricsHook, error) {
	h := &MetricsHook{instance: instance}
	var err error
	if h.commands, err = meter.Int64Counter("redis_commands_total",
		metric.WithDescription("Total number of Redis commands executed"),
		metric.WithUnit("{command}")); err != nil {
		return nil, err
	}
	if h.errors, err = meter.Int64Counter("redis_errors_total",
		metric.WithDescription("Total number of Redis errors"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if h.duration, err = meter.Float64Histogram("redis_command_duration_seconds",
		metric.WithDescription("Redis command duration distribution"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *MetricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *MetricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, cmd.Name(), time.Since(start), err)
		return err
	}
}

func (h *MetricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.record(ctx, "pipeline", time.Since(start), err)
		return err
	}
}

func (h *MetricsHook) record(ctx context.Context, cmd string, d time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("instance", h.instance),
		attribute.String("command", cmd),
	)
	h.commands.Add(ctx, 1, attrs)
	h.duration.Record(ctx, d.Seconds(), attrs)
	if err != nil && !errors.Is(err, redis.Nil) {
		h.errors.Add(ctx, 1, attrs)
	}
}
