package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger 创建写入内存的 Logger，测试里用来断言日志内容
//
//	log, logs := logger.NewObservedLogger("cache")
//	...
//	assert.Equal(t, 1, logs.FilterMessage("cache set failed").Len())
func NewObservedLogger(module string) (*CtxZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultManagerConfig()
	cfg.EnableStacktrace = false
	return &CtxZapLogger{
		base:   zap.New(core).With(zap.String("module", module)),
		module: module,
		config: &cfg,
	}, logs
}

// NewNopLogger discards everything
func NewNopLogger(module string) *CtxZapLogger {
	return &CtxZapLogger{base: zap.NewNop(), module: module}
}
