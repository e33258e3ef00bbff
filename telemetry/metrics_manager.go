package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// MetricsManager 管理 MeterProvider
type MetricsManager struct {
	meterProvider *sdkmetric.MeterProvider
	// reader is set only with the noop exporter, for manual collection
	reader  *sdkmetric.ManualReader
	config  MetricsConfig
	enabled bool
}

// newMetricsManager 未启用时返回 disabled 的实例，Meter 一律为 noop
func (m *Manager) newMetricsManager(ctx context.Context, res *resource.Resource) (*MetricsManager, error) {
	if !m.config.Metrics.Enabled {
		return &MetricsManager{config: m.config.Metrics}, nil
	}

	exporter, err := m.metricExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("create metrics exporter failed: %w", err)
	}

	mm := &MetricsManager{config: m.config.Metrics, enabled: true}
	var reader sdkmetric.Reader
	if exporter == nil {
		mm.reader = sdkmetric.NewManualReader()
		reader = mm.reader
	} else {
		reader = sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.config.Metrics.ExportInterval),
			sdkmetric.WithTimeout(m.config.Metrics.ExportTimeout),
		)
	}

	mm.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	return mm, nil
}

// Shutdown flushes once, then closes the MeterProvider
func (mm *MetricsManager) Shutdown(ctx context.Context) error {
	if mm == nil || mm.meterProvider == nil {
		return nil
	}
	return mm.meterProvider.Shutdown(ctx)
}

// Meter is noop when disabled
func (mm *MetricsManager) Meter(name string) metric.Meter {
	if mm == nil || !mm.enabled {
		return noop.NewMeterProvider().Meter(name)
	}
	return mm.meterProvider.Meter(name)
}

// MeterProvider for otelgin and other instrumentation
func (mm *MetricsManager) MeterProvider() metric.MeterProvider {
	if mm == nil || !mm.enabled {
		return noop.NewMeterProvider()
	}
	return mm.meterProvider
}

// Reader noop 导出器下的 ManualReader，其它情况为 nil
func (mm *MetricsManager) Reader() *sdkmetric.ManualReader {
	if mm == nil {
		return nil
	}
	return mm.reader
}

// IsEnabled reports whether metrics are on
func (mm *MetricsManager) IsEnabled() bool {
	return mm != nil && mm.enabled
}
