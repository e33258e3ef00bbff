package cache

import (
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// New builds a ModelCache from cfg.
// client is required for engine=redis and ignored for engine=memory.
func New(cfg Config, client redis.UniversalClient, log *logger.CtxZapLogger, meter metric.Meter) (*ModelCache, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	serializer, err := NewSerializer(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	var engine Engine
	switch cfg.Engine {
	case "memory":
		engine, err = NewMemoryEngine(cfg.Memory)
		if err != nil {
			return nil, err
		}
	default:
		if client == nil {
			return nil, ErrConfigInvalid.WithMsgf("redis instance %q not configured", cfg.RedisInstance)
		}
		engine = NewRedisEngine(client)
	}

	return NewModelCache(engine, log, WithSerializer(serializer), WithMeter(meter)), nil
}
