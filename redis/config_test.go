package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Addr: "127.0.0.1:6379"}
	cfg.ApplyDefaults()

	assert.Equal(t, "standalone", cfg.Mode)
	assert.Equal(t, []string{"127.0.0.1:6379"}, cfg.Addrs)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{Mode: "cluster", Addrs: []string{"a:1", "b:2"}, PoolSize: 50, ReadTimeout: time.Second}
	cfg.ApplyDefaults()

	assert.Equal(t, "cluster", cfg.Mode)
	assert.Equal(t, 50, cfg.PoolSize)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
	assert.NoError(t, cfg.Validate())
}
