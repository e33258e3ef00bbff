package config

import (
	"os"
	"strings"
)

// EnvSource 环境变量数据源
// 默认规则 APP_CACHE_TTL_FILM -> cache.ttl.film；key 本身含下划线时用 Bind 显式映射
type EnvSource struct {
	prefix   string
	priority int
	bindings map[string]string // env name -> config key
}

func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{prefix: prefix, priority: priority, bindings: make(map[string]string)}
}

// Bind maps an env name to a key, e.g. Bind("API_CACHE_EXPIRE_FOR_FILM_SERVICE", "cache.ttl.film")
// Bound names are not prefixed.
func (s *EnvSource) Bind(envKey, configKey string) *EnvSource {
	s.bindings[envKey] = configKey
	return s
}

func (s *EnvSource) Name() string  { return "env:" + s.prefix }
func (s *EnvSource) Priority() int { return s.priority }

func (s *EnvSource) Load() (map[string]any, error) {
	out := make(map[string]any)

	if s.prefix != "" {
		prefix := s.prefix + "_"
		for _, kv := range os.Environ() {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || !strings.HasPrefix(name, prefix) {
				continue
			}
			key := strings.ToLower(strings.TrimPrefix(name, prefix))
			out[strings.ReplaceAll(key, "_", ".")] = value
		}
	}

	// 显式映射优先于前缀扫描
	for envKey, configKey := range s.bindings {
		if value, ok := os.LookupEnv(envKey); ok && value != "" {
			out[configKey] = value
		}
	}
	return out, nil
}
