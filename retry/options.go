package retry

import "time"

type config struct {
	// maxAttempts 0 means bounded only by maxElapsed and ctx
	maxAttempts    int
	maxElapsed     time.Duration
	attemptTimeout time.Duration
	backoff        BackoffStrategy
	condition      RetryCondition
	onRetry        func(attempt int, err error, delay time.Duration)
}

func defaultConfig() *config {
	return &config{
		maxAttempts: 3,
		backoff:     ExponentialBackoff(100 * time.Millisecond),
		condition:   AlwaysRetry(),
	}
}

// Option configures Do
type Option func(*config)

// MaxAttempts 0 means unlimited
func MaxAttempts(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxAttempts = n
		}
	}
}

// MaxElapsed caps the total time, waits included
func MaxElapsed(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.maxElapsed = d
		}
	}
}

// AttemptTimeout bounds a single attempt
func AttemptTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

func Backoff(b BackoffStrategy) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

func Condition(cond RetryCondition) Option {
	return func(c *config) {
		if cond != nil {
			c.condition = cond
		}
	}
}

// OnRetry is called before each backoff wait
func OnRetry(f func(attempt int, err error, delay time.Duration)) Option {
	return func(c *config) {
		c.onRetry = f
	}
}
