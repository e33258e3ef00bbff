// Package config 多数据源配置加载：文件 < 环境文件 < 环境变量 < 命令行
package config

// ConfigSource 配置数据源
// Load 返回点号分隔的扁平 key，例如 "cache.ttl.film"
type ConfigSource interface {
	Name() string
	// Priority 数值越大优先级越高：config.yaml 10, {env}.yaml 20, 环境变量 50, 命令行 100
	Priority() int
	Load() (map[string]any, error)
}

// Validator is implemented by each module's Config
type Validator interface {
	Validate() error
}

// ValidateAll returns the first error
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
