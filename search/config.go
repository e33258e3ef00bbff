package search

import (
	"time"

	"github.com/KOMKZ/go-yogan-content/breaker"
)

// IndexConfig 各实体所在的索引
type IndexConfig struct {
	Film   string `mapstructure:"film"`
	Genre  string `mapstructure:"genre"`
	Person string `mapstructure:"person"`
}

// Config 检索配置
type Config struct {
	// Engine elastic 或 memory
	Engine         string        `mapstructure:"engine"`
	Addresses      []string      `mapstructure:"addresses"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Indexes        IndexConfig   `mapstructure:"indexes"`
	// Seed 仅 memory 引擎：索引名 -> JSON/YAML 文件
	Seed map[string]string `mapstructure:"seed"`
	// Breaker 仅 elastic 引擎，按索引熔断
	Breaker breaker.Config `mapstructure:"breaker"`
}

func (c *Config) ApplyDefaults() {
	if c.Engine == "" {
		c.Engine = "elastic"
	}
	if c.Engine == "elastic" && len(c.Addresses) == 0 {
		c.Addresses = []string{"http://127.0.0.1:9200"}
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 5 * time.Second
	}
	if c.Indexes.Film == "" {
		c.Indexes.Film = "movies"
	}
	if c.Indexes.Genre == "" {
		c.Indexes.Genre = "genres"
	}
	if c.Indexes.Person == "" {
		c.Indexes.Person = "persons"
	}
	c.Breaker.ApplyDefaults()
}

func (c *Config) Validate() error {
	switch c.Engine {
	case "elastic":
		if len(c.Addresses) == 0 {
			return ErrConfigInvalid.WithMsgf("search.addresses is required for elastic engine")
		}
	case "memory":
	default:
		return ErrConfigInvalid.WithMsgf("unknown search engine: %s", c.Engine)
	}
	if c.RequestTimeout < 0 {
		return ErrConfigInvalid.WithMsgf("search.request_timeout must not be negative")
	}
	if err := c.Breaker.Validate(); err != nil {
		return ErrConfigInvalid.Wrap(err)
	}
	return nil
}
