package retry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MultiError collects every failed attempt; Error() reports the last one
type MultiError struct {
	Errors   []error
	Attempts int
	Elapsed  time.Duration
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "retry failed: no errors"
	}
	return fmt.Sprintf("retry failed after %d attempts: %v", e.Attempts, e.Errors[len(e.Errors)-1])
}

// Unwrap lets errors.Is / errors.As match any attempt
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Last returns the final attempt's error
func (e *MultiError) Last() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}

// Detail 逐次列出错误
func (e *MultiError) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "retry failed after %d attempts in %s:", e.Attempts, e.Elapsed.Round(time.Millisecond))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  attempt %d: %v", i+1, err)
	}
	return b.String()
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable; Do returns immediately
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
