package cache

import "time"

// TTLConfig per-entity expiry, independent of each other
type TTLConfig struct {
	Film   time.Duration `mapstructure:"film"`
	Genre  time.Duration `mapstructure:"genre"`
	Person time.Duration `mapstructure:"person"`
}

// Config is the cache section
type Config struct {
	// Engine is redis or memory
	Engine string `mapstructure:"engine"`
	// RedisInstance names a client in redis.Manager
	RedisInstance string       `mapstructure:"redis_instance"`
	Serializer    string       `mapstructure:"serializer"`
	Memory        MemoryConfig `mapstructure:"memory"`
	TTL           TTLConfig    `mapstructure:"ttl"`
}

// ApplyDefaults: redis engine, JSON, 5 minute TTLs
func (c *Config) ApplyDefaults() {
	if c.Engine == "" {
		c.Engine = "redis"
	}
	if c.RedisInstance == "" {
		c.RedisInstance = "main"
	}
	if c.Serializer == "" {
		c.Serializer = "json"
	}
	for _, ttl := range []*time.Duration{&c.TTL.Film, &c.TTL.Genre, &c.TTL.Person} {
		if *ttl == 0 {
			*ttl = 5 * time.Minute
		}
	}
}

func (c *Config) Validate() error {
	if c.Engine != "redis" && c.Engine != "memory" {
		return ErrConfigInvalid.WithMsgf("unknown cache engine: %s", c.Engine)
	}
	if c.Serializer != "json" && c.Serializer != "msgpack" {
		return ErrConfigInvalid.WithMsgf("unknown serializer: %s", c.Serializer)
	}
	if c.TTL.Film < time.Second || c.TTL.Genre < time.Second || c.TTL.Person < time.Second {
		return ErrConfigInvalid.WithMsgf("cache ttl must be at least 1s, got film=%s genre=%s person=%s",
			c.TTL.Film, c.TTL.Genre, c.TTL.Person)
	}
	return nil
}
