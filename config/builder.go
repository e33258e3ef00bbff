package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// LoaderBuilder 组装标准的数据源组合
type LoaderBuilder struct {
	configPath   string
	envPrefix    string
	envBindings  map[string]string
	flags        *pflag.FlagSet
	flagBindings map[string]string
}

func NewLoaderBuilder() *LoaderBuilder {
	return &LoaderBuilder{envBindings: make(map[string]string)}
}

// WithConfigPath reads config.yaml and {env}.yaml from path
func (b *LoaderBuilder) WithConfigPath(path string) *LoaderBuilder {
	b.configPath = path
	return b
}

func (b *LoaderBuilder) WithEnvPrefix(prefix string) *LoaderBuilder {
	b.envPrefix = prefix
	return b
}

// WithEnvBinding adds explicit env var mappings
func (b *LoaderBuilder) WithEnvBinding(envKey, configKey string) *LoaderBuilder {
	b.envBindings[envKey] = configKey
	return b
}

// WithFlags 命令行 flag 及其到配置 key 的映射
func (b *LoaderBuilder) WithFlags(flags *pflag.FlagSet, bindings map[string]string) *LoaderBuilder {
	b.flags = flags
	b.flagBindings = bindings
	return b
}

func (b *LoaderBuilder) Build() (*Loader, error) {
	loader := NewLoader()
	if b.configPath != "" {
		loader.AddSource(NewFileSource(filepath.Join(b.configPath, "config.yaml"), 10))
		loader.AddSource(NewFileSource(filepath.Join(b.configPath, GetEnv()+".yaml"), 20))
	}
	if b.envPrefix != "" || len(b.envBindings) > 0 {
		env := NewEnvSource(b.envPrefix, 50)
		for k, v := range b.envBindings {
			env.Bind(k, v)
		}
		loader.AddSource(env)
	}
	if b.flags != nil {
		loader.AddSource(NewFlagSource(b.flags, b.flagBindings, 100))
	}
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return loader, nil
}

// GetEnv: APP_ENV > ENV > dev
func GetEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "dev"
}
