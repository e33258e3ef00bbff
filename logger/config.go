package logger

import (
	"fmt"
	"slices"

	"go.uber.org/zap/zapcore"
)

// ManagerConfig is shared by all modules
type ManagerConfig struct {
	Dir              string `mapstructure:"dir"`      // root dir, one subdir per module
	Level            string `mapstructure:"level"`    // debug/info/warn/error
	AppName          string `mapstructure:"app_name"` // added to every entry
	Encoding         string `mapstructure:"encoding"` // json or console
	EnableConsole    bool   `mapstructure:"enable_console"`
	EnableFile       bool   `mapstructure:"enable_file"`
	MaxSize          int    `mapstructure:"max_size"` // MB
	MaxBackups       int    `mapstructure:"max_backups"`
	MaxAge           int    `mapstructure:"max_age"` // days
	Compress         bool   `mapstructure:"compress"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"` // 仅 error 级别
	StacktraceDepth  int    `mapstructure:"stacktrace_depth"`
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
}

// DefaultManagerConfig 默认配置：只输出到控制台，文件输出需显式开启
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Dir:              "logs",
		Level:            "info",
		Encoding:         "json",
		EnableConsole:    true,
		MaxSize:          100,
		MaxBackups:       3,
		MaxAge:           28,
		Compress:         true,
		EnableCaller:     true,
		EnableStacktrace: true,
		StacktraceDepth:  5,
		EnableTraceID:    true,
	}
}

// ApplyDefaults fills zero fields; bools can't tell unset from false and are kept
func (c *ManagerConfig) ApplyDefaults() {
	d := DefaultManagerConfig()
	if c.Dir == "" {
		c.Dir = d.Dir
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Encoding == "" {
		c.Encoding = d.Encoding
	}
	if c.MaxSize == 0 {
		c.MaxSize = d.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = d.MaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = d.MaxAge
	}
	if c.StacktraceDepth == 0 {
		c.StacktraceDepth = d.StacktraceDepth
	}
}

// Validate 校验配置
func (c ManagerConfig) Validate() error {
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Level) {
		return fmt.Errorf("[Logger] invalid level %q, valid values: %v", c.Level, levels)
	}
	if c.Encoding != "json" && c.Encoding != "console" {
		return fmt.Errorf("[Logger] invalid encoding %q, valid values: json, console", c.Encoding)
	}
	if c.EnableFile && (c.MaxSize < 1 || c.MaxSize > 10000) {
		return fmt.Errorf("[Logger] max_size must be between 1-10000 MB, current: %d", c.MaxSize)
	}
	if !c.EnableConsole && !c.EnableFile {
		return fmt.Errorf("[Logger] at least one of enable_console / enable_file must be set")
	}
	return nil
}

// ParseLevel falls back to info for unknown names
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
