package config

import "github.com/spf13/pflag"

// FlagSource 命令行数据源，只读取用户显式设置过的 flag
// 未设置的 flag 不参与合并，避免 flag 默认值覆盖配置文件
type FlagSource struct {
	flags    *pflag.FlagSet
	bindings map[string]string // flag name -> config key
	priority int
}

func NewFlagSource(flags *pflag.FlagSet, bindings map[string]string, priority int) *FlagSource {
	return &FlagSource{flags: flags, bindings: bindings, priority: priority}
}

func (s *FlagSource) Name() string  { return "flags" }
func (s *FlagSource) Priority() int { return s.priority }

func (s *FlagSource) Load() (map[string]any, error) {
	out := make(map[string]any)
	if s.flags == nil {
		return out, nil
	}
	for name, key := range s.bindings {
		f := s.flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		out[key] = f.Value.String()
	}
	return out, nil
}
