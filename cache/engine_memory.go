package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryConfig 进程内缓存容量
type MemoryConfig struct {
	// MaxCost total byte budget
	MaxCost int64 `mapstructure:"max_cost"`
	// NumCounters 频率计数器数量，建议为预期条目数的 10 倍
	NumCounters int64 `mapstructure:"num_counters"`
}

type memoryEntry struct {
	value  []byte
	list   [][]byte
	isList bool
}

// MemoryEngine is an in-process engine on ristretto, for single-node setups and tests.
// Lists are stored as immutable snapshots, so readers see all or nothing.
type MemoryEngine struct {
	cache *ristretto.Cache[string, memoryEntry]
}

func NewMemoryEngine(cfg MemoryConfig) (*MemoryEngine, error) {
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 64 << 20
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 1e5
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, memoryEntry]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, ErrConfigInvalid.Wrap(err)
	}
	return &MemoryEngine{cache: c}, nil
}

func (e *MemoryEngine) Name() string { return "memory" }

func (e *MemoryEngine) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := e.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.isList {
		return nil, ErrEngineGet.Wrap(fmt.Errorf("WRONGTYPE key %s holds a list", key))
	}
	return entry.value, nil
}

// Set ristretto 可能因准入策略丢弃写入，丢弃等同于之后的一次未命中
func (e *MemoryEngine) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e.cache.SetWithTTL(key, memoryEntry{value: value}, int64(len(value)), ttl)
	e.cache.Wait()
	return nil
}

func (e *MemoryEngine) GetList(_ context.Context, key string) ([][]byte, error) {
	entry, ok := e.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.isList {
		return nil, ErrEngineGet.Wrap(fmt.Errorf("WRONGTYPE key %s holds a value", key))
	}
	if len(entry.list) == 0 {
		return nil, ErrCacheMiss
	}
	out := make([][]byte, len(entry.list))
	copy(out, entry.list)
	return out, nil
}

func (e *MemoryEngine) SetList(_ context.Context, key string, values [][]byte, ttl time.Duration) error {
	if len(values) == 0 {
		e.cache.Del(key)
		return nil
	}
	snapshot := make([][]byte, len(values))
	var cost int64
	for i, v := range values {
		snapshot[i] = v
		cost += int64(len(v))
	}
	e.cache.SetWithTTL(key, memoryEntry{list: snapshot, isList: true}, cost, ttl)
	e.cache.Wait()
	return nil
}

func (e *MemoryEngine) Delete(_ context.Context, key string) error {
	e.cache.Del(key)
	return nil
}

func (e *MemoryEngine) Ping(context.Context) error { return nil }

func (e *MemoryEngine) Close() error {
	e.cache.Close()
	return nil
}
