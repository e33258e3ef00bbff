package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/search"
	"github.com/KOMKZ/go-yogan-content/service"
)

// ContentFixture miniredis + 内存检索 + 三个读服务
type ContentFixture struct {
	Redis    *miniredis.Miniredis
	Client   *goredis.Client
	Cache    *cache.ModelCache
	Store    *search.MemoryStore
	Services *service.Services
	TTL      cache.TTLConfig
	Indexes  search.IndexConfig
}

// DefaultTestTTL 三类实体使用不同 TTL，便于断言
var DefaultTestTTL = cache.TTLConfig{
	Film:   300 * time.Second,
	Genre:  600 * time.Second,
	Person: 120 * time.Second,
}

// TestdataDir search/testdata 的绝对路径
func TestdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "search", "testdata")
}

// SeedFiles 默认种子文件
func SeedFiles() map[string]string {
	dir := TestdataDir()
	return map[string]string{
		"movies":  filepath.Join(dir, "movies.json"),
		"genres":  filepath.Join(dir, "genres.yaml"),
		"persons": filepath.Join(dir, "persons.json"),
	}
}

// NewContentFixture 组装一套可直接读的服务，测试结束自动清理
func NewContentFixture(t *testing.T) *ContentFixture {
	t.Helper()

	store := search.NewMemoryStore(logger.NewNopLogger("search"), nil)
	for index, path := range SeedFiles() {
		require.NoError(t, store.LoadFile(index, path))
	}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewModelCache(cache.NewRedisEngine(client), logger.NewNopLogger("cache"))
	indexes := search.IndexConfig{Film: "movies", Genre: "genres", Person: "persons"}

	return &ContentFixture{
		Redis:    mr,
		Client:   client,
		Cache:    c,
		Store:    store,
		Services: service.New(c, store, DefaultTestTTL, indexes, logger.NewNopLogger("service")),
		TTL:      DefaultTestTTL,
		Indexes:  indexes,
	}
}
