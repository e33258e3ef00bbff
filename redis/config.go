package redis

import (
	"fmt"
	"time"
)

// Config holds the settings of one named Redis instance
type Config struct {
	// Mode is standalone or cluster
	Mode string `mapstructure:"mode"`
	// Addrs standalone uses only the first entry
	Addrs        []string      `mapstructure:"addrs"`
	Addr         string        `mapstructure:"addr"` // shorthand for Addrs[0]
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ApplyDefaults fills zero values
// MaxRetries is pinned to -1 (no retries in go-redis), so a failed read returns at once
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = "standalone"
	}
	if c.Addr != "" && len(c.Addrs) == 0 {
		c.Addrs = []string{c.Addr}
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 2
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
}

// Validate checks the instance config
func (c *Config) Validate() error {
	if c.Mode != "standalone" && c.Mode != "cluster" {
		return fmt.Errorf("invalid mode: %s (must be standalone or cluster)", c.Mode)
	}
	if len(c.Addrs) == 0 {
		return fmt.Errorf("addrs cannot be empty")
	}
	if c.Mode == "standalone" && (c.DB < 0 || c.DB > 15) {
		return fmt.Errorf("db must be between 0 and 15, got: %d", c.DB)
	}
	if c.PoolSize < 0 || c.MinIdleConns < 0 {
		return fmt.Errorf("pool_size and min_idle_conns must be >= 0")
	}
	return nil
}
