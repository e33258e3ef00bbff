package logger

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CtxZapLogger Context-Aware 的 Zap Logger
// module 在创建时绑定，调用时只传 ctx，trace_id 自动注入
type CtxZapLogger struct {
	base   *zap.Logger
	module string
	config *ManagerConfig
}

type traceIDKey struct{}

// WithTraceID stores a trace id for paths without an otel span
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext prefers the otel span TraceID, then WithTraceID
func TraceIDFromContext(ctx context.Context) string {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	if v, ok := ctx.Value(traceIDKey{}).(string); ok {
		return v
	}
	return ""
}

func (l *CtxZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Info(msg, l.enrich(ctx, fields)...)
}

func (l *CtxZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Debug(msg, l.enrich(ctx, fields)...)
}

func (l *CtxZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Warn(msg, l.enrich(ctx, fields)...)
}

// ErrorCtx 记录 Error 日志，开启 EnableStacktrace 时附带受控深度的堆栈
func (l *CtxZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	enriched := l.enrich(ctx, fields)
	if l.config != nil && l.config.EnableStacktrace {
		// skip: runtime.Callers, captureStack, ErrorCtx
		if stack := captureStack(3, l.config.StacktraceDepth); stack != "" {
			enriched = append(enriched, zap.String("stack", stack))
		}
	}
	l.base.Error(msg, enriched...)
}

func (l *CtxZapLogger) Info(msg string, fields ...zap.Field) {
	l.base.Info(msg, l.enrich(context.Background(), fields)...)
}

func (l *CtxZapLogger) Warn(msg string, fields ...zap.Field) {
	l.base.Warn(msg, l.enrich(context.Background(), fields)...)
}

func (l *CtxZapLogger) Error(msg string, fields ...zap.Field) {
	l.base.Error(msg, l.enrich(context.Background(), fields)...)
}

func (l *CtxZapLogger) Debug(msg string, fields ...zap.Field) {
	l.base.Debug(msg, l.enrich(context.Background(), fields)...)
}

// With returns a Logger with preset fields
func (l *CtxZapLogger) With(fields ...zap.Field) *CtxZapLogger {
	return &CtxZapLogger{base: l.base.With(fields...), module: l.module, config: l.config}
}

// Module name bound at creation
func (l *CtxZapLogger) Module() string {
	return l.module
}

// GetZapLogger 底层 zap.Logger，给需要 *zap.Logger 的第三方库
func (l *CtxZapLogger) GetZapLogger() *zap.Logger {
	return l.base
}

func (l *CtxZapLogger) enrich(ctx context.Context, fields []zap.Field) []zap.Field {
	if l.config == nil {
		return fields
	}
	out := make([]zap.Field, 0, len(fields)+2)
	if l.config.AppName != "" {
		out = append(out, zap.String("app_name", l.config.AppName))
	}
	if l.config.EnableTraceID && ctx != nil {
		if id := TraceIDFromContext(ctx); id != "" {
			out = append(out, zap.String("trace_id", id))
		}
	}
	return append(out, fields...)
}

func captureStack(skip, depth int) string {
	if depth <= 0 {
		depth = 10
	}
	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var lines []string
	for {
		f, more := frames.Next()
		lines = append(lines, fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line))
		if !more {
			break
		}
	}
	return strings.Join(lines, "\n")
}
