package telemetry

import (
	"fmt"
	"time"
)

// Config is the OpenTelemetry section
type Config struct {
	Enabled        bool           `mapstructure:"enabled"`
	ServiceName    string         `mapstructure:"service_name"`
	ServiceVersion string         `mapstructure:"service_version"`
	Exporter       ExporterConfig `mapstructure:"exporter"`
	Sampler        SamplerConfig  `mapstructure:"sampler"`
	// ResourceAttrs may nest; ${ENV} in values is expanded
	ResourceAttrs map[string]any `mapstructure:"resource_attributes"`
	Batch         BatchConfig    `mapstructure:"batch"`
	Metrics       MetricsConfig  `mapstructure:"metrics"`
}

// ExporterConfig is shared by traces and metrics
type ExporterConfig struct {
	// Type otlp / stdout / noop
	Type     string            `mapstructure:"type"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Headers  map[string]string `mapstructure:"headers"`
}

// SamplerConfig 采样配置
type SamplerConfig struct {
	Type  string  `mapstructure:"type"`
	Ratio float64 `mapstructure:"ratio"` // trace_id_ratio only
}

// BatchConfig span 批处理
type BatchConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxQueueSize       int           `mapstructure:"max_queue_size"`
	MaxExportBatchSize int           `mapstructure:"max_export_batch_size"`
	ScheduleDelay      time.Duration `mapstructure:"schedule_delay"`
	ExportTimeout      time.Duration `mapstructure:"export_timeout"`
}

// MetricsConfig 指标配置
// HTTP/Cache/Search/Redis 分别控制各层是否拿到真实 Meter，关闭时拿到 noop
type MetricsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ExportInterval time.Duration `mapstructure:"export_interval"`
	ExportTimeout  time.Duration `mapstructure:"export_timeout"`
	HTTP           bool          `mapstructure:"http"`
	Cache          bool          `mapstructure:"cache"`
	Search         bool          `mapstructure:"search"`
	Redis          bool          `mapstructure:"redis"`
}

// DefaultConfig is disabled
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    "content-api",
		ServiceVersion: "1.0.0",
		Exporter: ExporterConfig{
			Type:     "otlp",
			Endpoint: "localhost:4317",
			Insecure: true,
			Timeout:  10 * time.Second,
		},
		Sampler: SamplerConfig{
			Type:  "parent_based_always_on",
			Ratio: 1.0,
		},
		ResourceAttrs: make(map[string]any),
		Batch: BatchConfig{
			Enabled:            true,
			MaxQueueSize:       2048,
			MaxExportBatchSize: 512,
			ScheduleDelay:      5 * time.Second,
			ExportTimeout:      30 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			ExportInterval: 10 * time.Second,
			ExportTimeout:  5 * time.Second,
			HTTP:           true,
			Cache:          true,
			Search:         true,
			Redis:          true,
		},
	}
}

// ApplyDefaults copies DefaultConfig into zero fields; bool switches are left alone
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = d.ServiceVersion
	}
	if c.Exporter.Type == "" {
		c.Exporter.Type = d.Exporter.Type
	}
	if c.Exporter.Type == "otlp" && c.Exporter.Endpoint == "" {
		c.Exporter.Endpoint = d.Exporter.Endpoint
	}
	if c.Exporter.Timeout == 0 {
		c.Exporter.Timeout = d.Exporter.Timeout
	}
	if c.Sampler.Type == "" {
		c.Sampler = d.Sampler
	}
	if c.Batch.MaxQueueSize == 0 {
		c.Batch.MaxQueueSize = d.Batch.MaxQueueSize
	}
	if c.Batch.MaxExportBatchSize == 0 {
		c.Batch.MaxExportBatchSize = d.Batch.MaxExportBatchSize
	}
	if c.Batch.ScheduleDelay == 0 {
		c.Batch.ScheduleDelay = d.Batch.ScheduleDelay
	}
	if c.Batch.ExportTimeout == 0 {
		c.Batch.ExportTimeout = d.Batch.ExportTimeout
	}
	if c.Metrics.ExportInterval == 0 {
		c.Metrics.ExportInterval = d.Metrics.ExportInterval
	}
	if c.Metrics.ExportTimeout == 0 {
		c.Metrics.ExportTimeout = d.Metrics.ExportTimeout
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required when telemetry is enabled")
	}

	switch c.Exporter.Type {
	case "otlp", "stdout", "noop":
	default:
		return fmt.Errorf("unsupported exporter type: %s (supported: otlp, stdout, noop)", c.Exporter.Type)
	}
	if c.Exporter.Type == "otlp" && c.Exporter.Endpoint == "" {
		return fmt.Errorf("exporter endpoint is required for otlp exporter")
	}

	switch c.Sampler.Type {
	case "always_on", "always_off", "trace_id_ratio", "parent_based_always_on":
	default:
		return fmt.Errorf("unsupported sampler type: %s", c.Sampler.Type)
	}
	if c.Sampler.Type == "trace_id_ratio" && (c.Sampler.Ratio < 0 || c.Sampler.Ratio > 1) {
		return fmt.Errorf("sampler ratio must be between 0 and 1, got: %f", c.Sampler.Ratio)
	}

	if c.Batch.Enabled {
		if c.Batch.MaxQueueSize <= 0 {
			return fmt.Errorf("batch max_queue_size must be positive, got: %d", c.Batch.MaxQueueSize)
		}
		if c.Batch.MaxExportBatchSize <= 0 {
			return fmt.Errorf("batch max_export_batch_size must be positive, got: %d", c.Batch.MaxExportBatchSize)
		}
	}

	if c.Metrics.Enabled && c.Metrics.ExportInterval <= 0 {
		return fmt.Errorf("metrics export_interval must be positive, got: %s", c.Metrics.ExportInterval)
	}
	return nil
}
