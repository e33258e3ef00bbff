// Package telemetry sets up OpenTelemetry traces and metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// Manager 管理 TracerProvider 与 MetricsManager
type Manager struct {
	config         Config
	logger         *logger.CtxZapLogger
	tracerProvider *trace.TracerProvider
	metricsManager *MetricsManager
	// out receives stdout exporter output; replaced in tests
	out io.Writer
}

// Option Manager 选项
type Option func(*Manager)

// WithWriter redirects the stdout exporter
func WithWriter(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// NewManager 创建 telemetry 管理器
func NewManager(config Config, log *logger.CtxZapLogger, opts ...Option) *Manager {
	if log == nil {
		log = logger.GetLogger("telemetry")
	}
	m := &Manager{config: config, logger: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start builds the providers and installs them globally
func (m *Manager) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.logger.InfoCtx(ctx, "Telemetry disabled, skipping initialization")
		return nil
	}
	if err := m.config.Validate(); err != nil {
		return err
	}

	res, err := m.buildResource(ctx)
	if err != nil {
		return fmt.Errorf("create resource failed: %w", err)
	}

	tp, err := m.buildTracerProvider(ctx, res)
	if err != nil {
		return err
	}
	mm, err := m.newMetricsManager(ctx, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}

	m.tracerProvider = tp
	m.metricsManager = mm

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	if mm.IsEnabled() {
		otel.SetMeterProvider(mm.meterProvider)
	}

	m.logger.InfoCtx(ctx, "Telemetry started",
		zap.String("service_name", m.config.ServiceName),
		zap.String("exporter", m.config.Exporter.Type),
		zap.Bool("metrics", mm.IsEnabled()),
	)
	return nil
}

// Shutdown flushes and closes the providers
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs []error
	if m.tracerProvider != nil {
		if err := m.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider failed: %w", err))
		}
	}
	if err := m.metricsManager.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown meter provider failed: %w", err))
	}
	return errors.Join(errs...)
}

// Tracer falls back to the global provider before Start
func (m *Manager) Tracer(name string) otelTrace.Tracer {
	if m.tracerProvider == nil {
		return otel.GetTracerProvider().Tracer(name)
	}
	return m.tracerProvider.Tracer(name)
}

// TracerProvider falls back to the global provider before Start
func (m *Manager) TracerProvider() otelTrace.TracerProvider {
	if m.tracerProvider == nil {
		return otel.GetTracerProvider()
	}
	return m.tracerProvider
}

// Metrics is nil before Start; MetricsManager methods are nil-safe
func (m *Manager) Metrics() *MetricsManager {
	return m.metricsManager
}

// Meter 按层开关返回 Meter，layer 为 http/cache/search/redis
func (m *Manager) Meter(layer string) metric.Meter {
	if !m.layerEnabled(layer) {
		return (*MetricsManager)(nil).Meter(layer)
	}
	return m.metricsManager.Meter(layer)
}

func (m *Manager) layerEnabled(layer string) bool {
	if !m.config.Enabled || !m.metricsManager.IsEnabled() {
		return false
	}
	switch layer {
	case "http":
		return m.config.Metrics.HTTP
	case "cache":
		return m.config.Metrics.Cache
	case "search":
		return m.config.Metrics.Search
	case "redis":
		return m.config.Metrics.Redis
	default:
		return true
	}
}

// IsEnabled 是否启用
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// GetConfig returns the config
func (m *Manager) GetConfig() Config {
	return m.config
}
