package retry

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// RetryCondition decides whether a failure is worth another attempt
type RetryCondition interface {
	ShouldRetry(err error, attempt int) bool
}

// ConditionFunc adapts a function
type ConditionFunc func(err error, attempt int) bool

func (f ConditionFunc) ShouldRetry(err error, attempt int) bool { return f(err, attempt) }

// AlwaysRetry retries any error
func AlwaysRetry() RetryCondition {
	return ConditionFunc(func(err error, _ int) bool { return err != nil })
}

// RetryOnErrors retries when errors.Is matches any target
func RetryOnErrors(targets ...error) RetryCondition {
	return ConditionFunc(func(err error, _ int) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	})
}

// RetryOnConnectionError 连接拒绝、重置、超时等网络错误
// 后端还在启动时通常表现为这类错误
func RetryOnConnectionError() RetryCondition {
	return ConditionFunc(func(err error, _ int) bool {
		if err == nil {
			return false
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return true
		}
		if errors.Is(err, syscall.ECONNREFUSED) ||
			errors.Is(err, syscall.ECONNRESET) ||
			errors.Is(err, syscall.ETIMEDOUT) ||
			errors.Is(err, syscall.EPIPE) {
			return true
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return netErr.Timeout()
		}
		var opErr *net.OpError
		return errors.As(err, &opErr)
	})
}

// Or retries when any condition does
func Or(conditions ...RetryCondition) RetryCondition {
	return ConditionFunc(func(err error, attempt int) bool {
		for _, c := range conditions {
			if c.ShouldRetry(err, attempt) {
				return true
			}
		}
		return false
	})
}
