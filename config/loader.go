package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Loader 按优先级合并多个数据源，结果同步到 viper 供 Unmarshal 使用
type Loader struct {
	sources     []ConfigSource
	merged      map[string]any
	v           *viper.Viper
	loadedFiles []string
}

func NewLoader() *Loader {
	return &Loader{merged: make(map[string]any), v: viper.New()}
}

func (l *Loader) AddSource(source ConfigSource) {
	l.sources = append(l.sources, source)
}

// Load 从低到高依次加载，高优先级覆盖低优先级
func (l *Loader) Load() error {
	sort.SliceStable(l.sources, func(i, j int) bool {
		return l.sources[i].Priority() < l.sources[j].Priority()
	})

	l.merged = make(map[string]any)
	l.loadedFiles = l.loadedFiles[:0]
	for _, src := range l.sources {
		data, err := src.Load()
		if err != nil {
			return fmt.Errorf("加载数据源 %s 失败: %w", src.Name(), err)
		}
		if fs, ok := src.(*FileSource); ok && len(data) > 0 {
			l.loadedFiles = append(l.loadedFiles, fs.Path())
		}
		for k, v := range data {
			l.merged[k] = v
		}
	}

	l.v = viper.New()
	for k, v := range unflatten(l.merged) {
		l.v.Set(k, v)
	}
	return nil
}

// unflatten {"cache.ttl.film": "60s"} -> {"cache": {"ttl": {"film": "60s"}}}
func unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = value
	}
	return out
}

// Unmarshal decodes into out using mapstructure tags
func (l *Loader) Unmarshal(out any) error {
	return l.v.Unmarshal(out)
}

// UnmarshalKey decodes one subtree
func (l *Loader) UnmarshalKey(key string, out any) error {
	return l.v.UnmarshalKey(key, out)
}

func (l *Loader) GetString(key string) string { return l.v.GetString(key) }
func (l *Loader) GetInt(key string) int       { return l.v.GetInt(key) }
func (l *Loader) IsSet(key string) bool       { return l.v.IsSet(key) }

// LoadedFiles 实际读到内容的配置文件
func (l *Loader) LoadedFiles() []string {
	return l.loadedFiles
}

// GetViper returns the underlying viper
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}
