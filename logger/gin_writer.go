package logger

import "strings"

// GinLogWriter 把 gin 的文本日志转成结构化日志（实现 io.Writer）
type GinLogWriter struct {
	log *CtxZapLogger
}

// NewGinLogWriter creates the gin adapter
func NewGinLogWriter(log *CtxZapLogger) *GinLogWriter {
	return &GinLogWriter{log: log}
}

func (w *GinLogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	switch {
	case msg == "":
	case strings.Contains(msg, "[GIN-debug]"):
		w.log.Debug(msg)
	case strings.Contains(msg, "[Recovery]"):
		w.log.Error(msg)
	default:
		w.log.Info(msg)
	}
	return len(p), nil
}
