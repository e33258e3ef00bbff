package health

import "time"

// Config 健康检查配置
type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Interval 后台巡检间隔，0 表示不巡检，每次请求实时检查
	Interval time.Duration `mapstructure:"interval"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Timeout:  5 * time.Second,
		Interval: 0,
	}
}
