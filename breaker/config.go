package breaker

import (
	"fmt"
	"time"
)

// Config applies to each resource (index name) independently
type Config struct {
	// Enabled false makes Allow always pass
	Enabled bool `mapstructure:"enabled"`

	// ConsecutiveFailures opens the circuit after this many failures in a row
	ConsecutiveFailures int `mapstructure:"consecutive_failures"`

	// OpenTimeout is how long Open lasts before HalfOpen probing
	OpenTimeout time.Duration `mapstructure:"open_timeout"`

	// HalfOpenRequests trial calls admitted in HalfOpen; all must succeed to close
	HalfOpenRequests int `mapstructure:"half_open_requests"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:             false,
		ConsecutiveFailures: 5,
		OpenTimeout:         10 * time.Second,
		HalfOpenRequests:    1,
	}
}

func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.ConsecutiveFailures == 0 {
		c.ConsecutiveFailures = d.ConsecutiveFailures
	}
	if c.OpenTimeout == 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenRequests == 0 {
		c.HalfOpenRequests = d.HalfOpenRequests
	}
}

func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.ConsecutiveFailures < 1 {
		return fmt.Errorf("[Breaker] consecutive_failures must be >= 1, got %d", c.ConsecutiveFailures)
	}
	if c.OpenTimeout <= 0 {
		return fmt.Errorf("[Breaker] open_timeout must be positive, got %s", c.OpenTimeout)
	}
	if c.HalfOpenRequests < 1 {
		return fmt.Errorf("[Breaker] half_open_requests must be >= 1, got %d", c.HalfOpenRequests)
	}
	return nil
}
