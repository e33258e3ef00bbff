package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// BackoffStrategy returns the wait after the attempt-th failure (1-based)
type BackoffStrategy interface {
	Next(attempt int) time.Duration
}

type BackoffOption func(*backoffConfig)

type backoffConfig struct {
	multiplier float64
	maxDelay   time.Duration
	// jitter ratio, 0.2 means ±20%
	jitter float64
}

func defaultBackoffConfig() *backoffConfig {
	return &backoffConfig{
		multiplier: 2.0,
		maxDelay:   5 * time.Second,
		jitter:     0.2,
	}
}

func WithMultiplier(m float64) BackoffOption {
	return func(c *backoffConfig) {
		if m >= 1 {
			c.multiplier = m
		}
	}
}

func WithMaxDelay(d time.Duration) BackoffOption {
	return func(c *backoffConfig) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// WithJitter accepts [0, 1]
func WithJitter(ratio float64) BackoffOption {
	return func(c *backoffConfig) {
		if ratio >= 0 && ratio <= 1 {
			c.jitter = ratio
		}
	}
}

type exponentialBackoff struct {
	base time.Duration
	cfg  *backoffConfig
}

// ExponentialBackoff delay = base * multiplier^(attempt-1), capped at maxDelay
func ExponentialBackoff(base time.Duration, opts ...BackoffOption) BackoffStrategy {
	cfg := defaultBackoffConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &exponentialBackoff{base: base, cfg: cfg}
}

func (b *exponentialBackoff) Next(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(b.base) * math.Pow(b.cfg.multiplier, float64(attempt-1))
	delay = math.Min(delay, float64(b.cfg.maxDelay))
	return time.Duration(applyJitter(delay, b.cfg.jitter))
}

type constantBackoff struct {
	delay  time.Duration
	jitter float64
}

func ConstantBackoff(delay time.Duration, opts ...BackoffOption) BackoffStrategy {
	cfg := defaultBackoffConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &constantBackoff{delay: delay, jitter: cfg.jitter}
}

func (b *constantBackoff) Next(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return time.Duration(applyJitter(float64(b.delay), b.jitter))
}

type noBackoff struct{}

// NoBackoff retries immediately
func NoBackoff() BackoffStrategy { return noBackoff{} }

func (noBackoff) Next(int) time.Duration { return 0 }

// applyJitter picks a value in [delay*(1-jitter), delay*(1+jitter)]
func applyJitter(delay, jitter float64) float64 {
	if jitter <= 0 {
		return delay
	}
	delta := delay * jitter
	return math.Max(0, delay+(rand.Float64()*2-1)*delta)
}
