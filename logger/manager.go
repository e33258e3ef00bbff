package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager 按模块管理 Logger，每个模块独立的日志文件
// 文件布局: {dir}/{module}/{module}-info.log 与 {module}-error.log
type Manager struct {
	cfg     ManagerConfig
	mu      sync.RWMutex
	loggers map[string]*CtxZapLogger
	writers []*lumberjack.Logger
}

var (
	globalMu      sync.Mutex
	globalManager *Manager
)

// NewManager creates a standalone Manager; zero fields get defaults
func NewManager(cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		cfg:     cfg,
		loggers: make(map[string]*CtxZapLogger),
	}
}

// InitManager 用给定配置替换全局 Manager，旧 Manager 的文件句柄会被关闭
// 启动时在读完配置之后调用；此前通过 GetLogger 拿到的 Logger 仍写入旧目标
func InitManager(cfg ManagerConfig) *Manager {
	m := NewManager(cfg)
	globalMu.Lock()
	old := globalManager
	globalManager = m
	globalMu.Unlock()
	if old != nil {
		old.CloseAll()
	}
	return m
}

func defaultManager() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalManager == nil {
		globalManager = NewManager(DefaultManagerConfig())
	}
	return globalManager
}

// GetLogger uses the global Manager, default config if not initialized
func GetLogger(module string) *CtxZapLogger {
	return defaultManager().GetLogger(module)
}

// CloseAll flushes and closes the global Manager
func CloseAll() {
	globalMu.Lock()
	m := globalManager
	globalMu.Unlock()
	if m != nil {
		m.CloseAll()
	}
}

// GetLogger 获取模块 Logger，按需创建，返回的 Logger 已带 module 字段
func (m *Manager) GetLogger(module string) *CtxZapLogger {
	m.mu.RLock()
	l, ok := m.loggers[module]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[module]; ok {
		return l
	}

	base := m.build(module).With(zap.String("module", module)).WithOptions(zap.AddCallerSkip(1))
	l = &CtxZapLogger{base: base, module: module, config: &m.cfg}
	m.loggers[module] = l
	return l
}

// Config returns the effective config
func (m *Manager) Config() ManagerConfig {
	return m.cfg
}

// CloseAll 刷新缓冲并关闭文件句柄
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.loggers {
		_ = l.base.Sync()
	}
	for _, w := range m.writers {
		_ = w.Close()
	}
	m.loggers = make(map[string]*CtxZapLogger)
	m.writers = nil
}

// build requires the write lock
func (m *Manager) build(module string) *zap.Logger {
	enc := newEncoder(m.cfg.Encoding)
	level := ParseLevel(m.cfg.Level)

	var cores []zapcore.Core
	if m.cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level))
	}
	if m.cfg.EnableFile {
		dir := filepath.Join(m.cfg.Dir, module)
		info := m.fileWriter(filepath.Join(dir, module+"-info.log"))
		errw := m.fileWriter(filepath.Join(dir, module+"-error.log"))
		cores = append(cores,
			zapcore.NewCore(enc, info, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= level && l < zapcore.ErrorLevel
			})),
			zapcore.NewCore(enc, errw, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zapcore.ErrorLevel
			})),
		)
	}

	var opts []zap.Option
	if m.cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(zapcore.NewTee(cores...), opts...)
}

func (m *Manager) fileWriter(path string) zapcore.WriteSyncer {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    m.cfg.MaxSize,
		MaxBackups: m.cfg.MaxBackups,
		MaxAge:     m.cfg.MaxAge,
		Compress:   m.cfg.Compress,
		LocalTime:  true,
	}
	m.writers = append(m.writers, lj)
	return zapcore.AddSync(lj)
}

func newEncoder(encoding string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == "console" {
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}
