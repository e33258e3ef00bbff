package search

import (
	"sort"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// New 按配置创建 Store；memory 引擎会加载 Seed 中的文件
func New(cfg Config, log *logger.CtxZapLogger, meter metric.Meter) (Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetLogger("search")
	}

	if cfg.Engine == "elastic" {
		return NewElasticStore(cfg, log, meter)
	}

	store := NewMemoryStore(log, meter)
	indexes := make([]string, 0, len(cfg.Seed))
	for index := range cfg.Seed {
		indexes = append(indexes, index)
	}
	sort.Strings(indexes)
	for _, index := range indexes {
		if err := store.LoadFile(index, cfg.Seed[index]); err != nil {
			return nil, err
		}
		log.Info("search seed loaded",
			zap.String("index", index),
			zap.String("file", cfg.Seed[index]),
			zap.Int("docs", store.Count(index)))
	}
	return store, nil
}
