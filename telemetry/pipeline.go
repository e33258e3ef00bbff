package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc/credentials/insecure"
)

// buildResource 服务名、版本加上 resource_attributes，值里的 ${ENV} 会展开
func (m *Manager) buildResource(ctx context.Context) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(m.config.ServiceName),
		semconv.ServiceVersion(m.config.ServiceVersion),
	}
	attrs = append(attrs, resourceAttrs(m.config.ResourceAttrs)...)
	return resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithHost(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
	)
}

// resourceAttrs flattens nested maps to dotted keys, sorted
func resourceAttrs(in map[string]any) []attribute.KeyValue {
	var out []attribute.KeyValue
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if prefix != "" {
				k = prefix + "." + k
			}
			switch v := v.(type) {
			case map[string]any:
				walk(k, v)
			case string:
				out = append(out, attribute.String(k, os.ExpandEnv(v)))
			default:
				out = append(out, attribute.String(k, fmt.Sprint(v)))
			}
		}
	}
	walk("", in)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// buildTracerProvider noop 导出器时不挂 span processor，span 只在进程内传播
func (m *Manager) buildTracerProvider(ctx context.Context, res *resource.Resource) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(m.sampler()),
	}

	var exporter trace.SpanExporter
	var err error
	switch exp := m.config.Exporter; exp.Type {
	case "otlp":
		clientOpts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(exp.Endpoint),
			otlptracegrpc.WithTimeout(exp.Timeout),
			otlptracegrpc.WithHeaders(exp.Headers),
		}
		if exp.Insecure {
			clientOpts = append(clientOpts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
		}
		exporter, err = otlptrace.New(ctx, otlptracegrpc.NewClient(clientOpts...))
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(m.writer()), stdouttrace.WithPrettyPrint())
	case "noop":
		return trace.NewTracerProvider(opts...), nil
	default:
		err = fmt.Errorf("unsupported exporter type: %s", exp.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("create span exporter failed: %w", err)
	}

	if b := m.config.Batch; b.Enabled {
		opts = append(opts, trace.WithBatcher(exporter,
			trace.WithMaxQueueSize(b.MaxQueueSize),
			trace.WithMaxExportBatchSize(b.MaxExportBatchSize),
			trace.WithBatchTimeout(b.ScheduleDelay),
			trace.WithExportTimeout(b.ExportTimeout),
		))
	} else {
		opts = append(opts, trace.WithSyncer(exporter))
	}
	return trace.NewTracerProvider(opts...), nil
}

func (m *Manager) sampler() trace.Sampler {
	switch m.config.Sampler.Type {
	case "always_on":
		return trace.AlwaysSample()
	case "always_off":
		return trace.NeverSample()
	case "trace_id_ratio":
		return trace.TraceIDRatioBased(m.config.Sampler.Ratio)
	default:
		return trace.ParentBased(trace.AlwaysSample())
	}
}

// metricExporter returns nil for noop; the caller uses a ManualReader instead
func (m *Manager) metricExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	switch exp := m.config.Exporter; exp.Type {
	case "otlp":
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(exp.Endpoint),
			otlpmetricgrpc.WithTimeout(exp.Timeout),
			otlpmetricgrpc.WithHeaders(exp.Headers),
		}
		if exp.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	case "stdout":
		return stdoutmetric.New(stdoutmetric.WithWriter(m.writer()))
	case "noop":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported metrics exporter type: %s", exp.Type)
	}
}

func (m *Manager) writer() io.Writer {
	if m.out != nil {
		return m.out
	}
	return os.Stdout
}
