// Package errcode 提供内容服务使用的分层错误码
// 错误码格式: MMBBBB (MM = 模块码, BBBB = 业务码)
package errcode

import (
	"errors"
	"fmt"
	"net/http"
)

// LayeredError 分层错误码
// 携带模块、消息键、HTTP 状态码、上下文数据以及原始错误
type LayeredError struct {
	module     string
	code       int
	msgKey     string
	msg        string
	httpStatus int
	data       map[string]any
	cause      error
}

// New 创建分层错误码
// httpStatus 可选，默认 500（内容服务的错误码默认都是服务端问题）
func New(moduleCode, businessCode int, module, msgKey, msg string, httpStatus ...int) *LayeredError {
	status := http.StatusInternalServerError
	if len(httpStatus) > 0 {
		status = httpStatus[0]
	}
	return &LayeredError{
		module:     module,
		code:       moduleCode*10000 + businessCode,
		msgKey:     msgKey,
		msg:        msg,
		httpStatus: status,
	}
}

func (e *LayeredError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Code returns the full code
func (e *LayeredError) Code() int { return e.code }

// Module name
func (e *LayeredError) Module() string { return e.module }

// MsgKey is the i18n message key
func (e *LayeredError) MsgKey() string { return e.msgKey }

// Message without the cause
func (e *LayeredError) Message() string { return e.msg }

// HTTPStatus 对应的 HTTP 状态码
func (e *LayeredError) HTTPStatus() int { return e.httpStatus }

// Data may be nil
func (e *LayeredError) Data() map[string]any { return e.data }

// Unwrap supports errors.Is / errors.As through the cause chain
func (e *LayeredError) Unwrap() error { return e.cause }

// Is compares codes only, ignoring message and data
func (e *LayeredError) Is(target error) bool {
	t, ok := target.(*LayeredError)
	if !ok {
		return false
	}
	return e.code == t.code
}

// WithMsgf returns a copy with a new message
func (e *LayeredError) WithMsgf(format string, args ...any) *LayeredError {
	clone := *e
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// WithData returns a copy with one more data entry
func (e *LayeredError) WithData(key string, value any) *LayeredError {
	clone := *e
	clone.data = make(map[string]any, len(e.data)+1)
	for k, v := range e.data {
		clone.data[k] = v
	}
	clone.data[key] = value
	return &clone
}

// Wrap returns a copy wrapping cause; nil cause returns e unchanged
func (e *LayeredError) Wrap(cause error) *LayeredError {
	if cause == nil {
		return e
	}
	clone := *e
	clone.cause = cause
	return &clone
}

// As extracts a LayeredError from the chain
func As(err error) (*LayeredError, bool) {
	var le *LayeredError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// HTTPStatusOf 返回错误对应的 HTTP 状态码，非 LayeredError 一律 500
func HTTPStatusOf(err error) int {
	if le, ok := As(err); ok {
		return le.HTTPStatus()
	}
	return http.StatusInternalServerError
}
