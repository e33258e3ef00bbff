package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/model"
)

func rating(v float64) *float64 { return &v }

func testFilms() []model.Film {
	return []model.Film{
		{UUID: "f3", Title: "Star Trek", IMDBRating: rating(7.9)},
		{UUID: "f1", Title: "Armageddon", IMDBRating: rating(6.7)},
		{UUID: "f2", Title: "Untitled"},
	}
}

func TestModelCache_One(t *testing.T) {
	for _, s := range []Serializer{NewJSONSerializer(), NewMsgpackSerializer()} {
		t.Run(s.Name(), func(t *testing.T) {
			c := NewModelCache(newTestMemoryEngine(t), logger.NewNopLogger("cache"), WithSerializer(s))
			ctx := context.Background()

			_, ok, err := GetOne[model.Film](ctx, c, "FilmService-f1:")
			require.NoError(t, err)
			assert.False(t, ok)

			film := testFilms()[1]
			require.NoError(t, SetOne(ctx, c, "FilmService-f1:", film, time.Minute))

			got, ok, err := GetOne[model.Film](ctx, c, "FilmService-f1:")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, film, got)

			assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())
		})
	}
}

func TestModelCache_List(t *testing.T) {
	engines := map[string]Engine{
		"memory": newTestMemoryEngine(t),
	}
	re, _ := newTestRedisEngine(t)
	engines["redis"] = re

	for name, e := range engines {
		t.Run(name, func(t *testing.T) {
			c := NewModelCache(e, logger.NewNopLogger("cache"))
			ctx := context.Background()
			key := BuildKey("FilmService", 1, 50, (*string)(nil), "-imdb_rating")

			_, ok, err := GetList[model.Film](ctx, c, key)
			require.NoError(t, err)
			assert.False(t, ok)

			films := testFilms()
			require.NoError(t, SetList(ctx, c, key, films, time.Minute))

			got, ok, err := GetList[model.Film](ctx, c, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, films, got)
		})
	}
}

func TestModelCache_EmptyListIsNotStored(t *testing.T) {
	c := NewModelCache(newTestMemoryEngine(t), logger.NewNopLogger("cache"))
	ctx := context.Background()

	require.NoError(t, SetList(ctx, c, "GenreService-1:50:", []model.Genre{}, time.Minute))
	_, ok, err := GetList[model.Genre](ctx, c, "GenreService-1:50:")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelCache_Expiry(t *testing.T) {
	re, mr := newTestRedisEngine(t)
	c := NewModelCache(re, logger.NewNopLogger("cache"))
	ctx := context.Background()

	require.NoError(t, SetOne(ctx, c, "GenreService-g1:", model.Genre{UUID: "g1", Name: "Action"}, 30*time.Second))
	mr.FastForward(29 * time.Second)
	_, ok, err := GetOne[model.Genre](ctx, c, "GenreService-g1:")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = GetOne[model.Genre](ctx, c, "GenreService-g1:")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelCache_EngineFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	log, logs := logger.NewObservedLogger("cache")
	c := NewModelCache(NewRedisEngine(client), log)
	ctx := context.Background()
	mr.Close()

	_, ok, err := GetOne[model.Film](ctx, c, "FilmService-f1:")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrEngineGet))

	err = SetOne(ctx, c, "FilmService-f1:", testFilms()[0], time.Minute)
	assert.True(t, errors.Is(err, ErrEngineSet))

	_, _, err = GetList[model.Film](ctx, c, "FilmService-1:50:")
	assert.True(t, errors.Is(err, ErrEngineGet))

	assert.Equal(t, int64(3), c.Stats().Errors)

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).FilterField(
		zap.String("key", "FilmService-f1:")).All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[1].ContextMap(), "value")
}

func TestModelCache_DecodeFailure(t *testing.T) {
	e := newTestMemoryEngine(t)
	c := NewModelCache(e, logger.NewNopLogger("cache"))
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "FilmService-bad:", []byte("{not json"), time.Minute))
	_, ok, err := GetOne[model.Film](ctx, c, "FilmService-bad:")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrDeserialize))
}

func TestModelCache_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	c := NewModelCache(newTestMemoryEngine(t), logger.NewNopLogger("cache"), WithMeter(provider.Meter("cache")))
	ctx := context.Background()

	_, _, _ = GetOne[model.Genre](ctx, c, "GenreService-g1:")
	require.NoError(t, SetOne(ctx, c, "GenreService-g1:", model.Genre{UUID: "g1"}, time.Minute))
	_, _, _ = GetOne[model.Genre](ctx, c, "GenreService-g1:")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
					prefix, _ := dp.Attributes.Value("prefix")
					assert.Equal(t, "GenreService", prefix.AsString())
				}
			}
		}
	}
	assert.Equal(t, int64(1), totals["cache_hits_total"])
	assert.Equal(t, int64(1), totals["cache_misses_total"])
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	tests := []struct {
		name    string
		cfg     Config
		client  redis.UniversalClient
		engine  string
		wantErr bool
	}{
		{"redis 默认", Config{}, client, "redis", false},
		{"memory + msgpack", Config{Engine: "memory", Serializer: "msgpack"}, nil, "memory", false},
		{"redis 缺少 client", Config{Engine: "redis"}, nil, "", true},
		{"未知引擎", Config{Engine: "memcached"}, client, "", true},
		{"未知序列化", Config{Serializer: "gob"}, client, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, tt.client, logger.NewNopLogger("cache"), nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfigInvalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.engine, c.Engine().Name())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Minute, cfg.TTL.Genre)

	cfg.TTL.Person = time.Millisecond
	assert.Error(t, cfg.Validate())
}
