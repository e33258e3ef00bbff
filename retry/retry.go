// Package retry provides retries with backoff, used to wait for backends at startup
package retry

import (
	"context"
	"errors"
	"time"
)

// Do runs op and retries it with backoff.
// On failure it returns a *MultiError holding every attempt's error.
func Do(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	_, err := DoWithData(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}

// DoWithData is Do for an op that returns a value
func DoWithData[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.maxElapsed > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.maxElapsed)
		defer cancel()
	}

	var (
		zero  T
		errs  []error
		start = time.Now()
	)
	fail := func(attempt int, extra ...error) (T, error) {
		return zero, &MultiError{
			Errors:   append(errs, extra...),
			Attempts: attempt,
			Elapsed:  time.Since(start),
		}
	}

	for attempt := 1; cfg.maxAttempts == 0 || attempt <= cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fail(attempt-1, err)
		}

		result, err := runAttempt(ctx, cfg.attemptTimeout, op)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)

		if IsPermanent(err) || !cfg.condition.ShouldRetry(err, attempt) {
			return fail(attempt)
		}
		if cfg.maxAttempts > 0 && attempt == cfg.maxAttempts {
			return fail(attempt)
		}

		delay := cfg.backoff.Next(attempt)
		// 剩余时间不够再等一轮
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
			return fail(attempt, context.DeadlineExceeded)
		}
		if cfg.onRetry != nil {
			cfg.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fail(attempt, ctx.Err())
		}
	}
	return fail(cfg.maxAttempts)
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return op(attemptCtx)
}

// Attempts reports how many attempts failed, or 0 if err is not a *MultiError
func Attempts(err error) int {
	var me *MultiError
	if errors.As(err, &me) {
		return me.Attempts
	}
	return 0
}
