package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/health"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/redis"
	"github.com/KOMKZ/go-yogan-content/search"
	"github.com/KOMKZ/go-yogan-content/testutil"
)

const filmArma = "025c58cd-1b7e-43be-9ffb-8571a613579b"

// newTestConfig miniredis 缓存 + 内存检索，端口由系统分配
func newTestConfig(t *testing.T, mr *miniredis.Miniredis) *AppConfig {
	t.Helper()
	logCfg := logger.DefaultManagerConfig()
	logCfg.Level = "error"
	return &AppConfig{
		App:       AppInfo{Name: "content-api-test", Version: "test"},
		ApiServer: ApiServerConfig{Host: "127.0.0.1", Port: 0, Mode: gin.TestMode},
		Logger:    &logCfg,
		Redis: map[string]redis.Config{
			"main": {Mode: "standalone", Addrs: []string{mr.Addr()}},
		},
		Cache: cache.Config{Engine: "redis", RedisInstance: "main"},
		Search: search.Config{
			Engine: "memory",
			Seed:   testutil.SeedFiles(),
		},
		Health: health.Config{Enabled: true, Timeout: time.Second},
	}
}

func TestApp_ServesFilmsOverHTTP(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})
	srv := testutil.MustNewTestServer(t, app)
	assert.Equal(t, StateRunning, app.State())

	resp, err := srv.Get("/api/v1/films/" + filmArma)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env testutil.Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Contains(t, string(env.Data), "Armageddon")

	assert.True(t, mr.Exists("FilmService-"+filmArma+":"), "读取后应写入缓存")
}

func TestApp_HealthRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})
	srv := testutil.MustNewTestServer(t, app)

	r := srv.Do(testutil.GET("/health"))
	require.Equal(t, http.StatusOK, r.Status())
	var h health.Response
	require.NoError(t, r.JSON(&h))
	assert.Equal(t, health.StatusHealthy, h.Status)
	assert.Contains(t, h.Checks, "cache")
	assert.Contains(t, h.Checks, "redis")

	r = srv.Do(testutil.GET("/health/live"))
	assert.Equal(t, http.StatusOK, r.Status())

	mr.Close()
	r = srv.Do(testutil.GET("/health"))
	assert.Equal(t, http.StatusServiceUnavailable, r.Status())
	require.NoError(t, r.JSON(&h))
	assert.Equal(t, health.StatusUnhealthy, h.Status)
	assert.Equal(t, health.StatusUnhealthy, h.Checks["cache"].Status)
	assert.Equal(t, health.StatusUnhealthy, h.Checks["redis"].Status)
}

// Redis 不可用时读请求失败，/health 必须同样报告不可用，负载均衡才会摘流
func TestApp_HealthAgreesWithReadsWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})
	srv := testutil.MustNewTestServer(t, app)

	read := srv.Do(testutil.GET("/api/v1/films/" + filmArma))
	require.Equal(t, http.StatusOK, read.Status())
	require.Equal(t, http.StatusOK, srv.Do(testutil.GET("/health")).Status())

	mr.Close()

	read = srv.Do(testutil.GET("/api/v1/films/" + filmArma))
	assert.Equal(t, http.StatusInternalServerError, read.Status())
	env, err := read.Envelope()
	require.NoError(t, err)
	assert.Equal(t, cache.ErrEngineGet.Code(), env.Code)

	hr := srv.Do(testutil.GET("/health"))
	assert.Equal(t, http.StatusServiceUnavailable, hr.Status())
	var h health.Response
	require.NoError(t, hr.JSON(&h))
	assert.Equal(t, health.StatusUnhealthy, h.Status)
}

func TestApp_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})
	require.NoError(t, app.Setup(context.Background()))
	defer app.Shutdown(context.Background())

	resp, err := app.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsHealthy())

	mr.Close()
	resp, err = app.Ping(context.Background())
	assert.Error(t, err)
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
}

func TestApp_SetupFailsWhenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr)
	mr.Close()

	app := New(Options{Config: cfg})
	err := app.Setup(context.Background())
	require.Error(t, err)
	assert.Nil(t, app.Engine())
}

func TestApp_SetupWaitsForRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr)
	cfg.Startup.WaitTimeout = 5 * time.Second
	mr.Close()

	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = mr.Restart()
	}()

	app := New(Options{Config: cfg})
	require.NoError(t, app.Setup(context.Background()))
	defer app.Shutdown(context.Background())
	assert.NotNil(t, app.Engine())
}

func TestApp_MemoryCacheNeedsNoRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr)
	cfg.Redis = nil
	cfg.Cache = cache.Config{Engine: "memory"}

	app := New(Options{Config: cfg})
	srv := testutil.MustNewTestServer(t, app)

	r := srv.Do(testutil.GET("/api/v1/genres/"))
	assert.Equal(t, http.StatusOK, r.Status())
	assert.Empty(t, mr.Keys())
}

func TestApp_SwaggerRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newTestConfig(t, mr)
	cfg.Swagger.Enabled = true

	app := New(Options{Config: cfg})
	srv := testutil.MustNewTestServer(t, app)

	r := srv.Do(testutil.GET("/openapi.json"))
	require.Equal(t, http.StatusOK, r.Status())
	assert.Contains(t, r.Body(), "/films/{film_id}")
	assert.Contains(t, r.Body(), "content-api-test API")
}

func TestApp_ExtraRouters(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})
	app.Routers().AddFunc(func(engine *gin.Engine, a *App) error {
		engine.GET("/version", func(c *gin.Context) {
			c.String(http.StatusOK, a.Config().App.Version)
		})
		return nil
	})
	srv := testutil.MustNewTestServer(t, app)

	r := srv.Do(testutil.GET("/version"))
	assert.Equal(t, http.StatusOK, r.Status())
	assert.Equal(t, "test", r.Body())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	app := New(Options{Config: newTestConfig(t, mr)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return app.State() == StateRunning }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run 未在取消后返回")
	}
	assert.Equal(t, StateStopped, app.State())
	assert.NoError(t, app.Shutdown(context.Background()), "重复关闭应为空操作")
}

func TestAppState_String(t *testing.T) {
	tests := []struct {
		state AppState
		want  string
	}{
		{StateInit, "Init"},
		{StateSetup, "Setup"},
		{StateRunning, "Running"},
		{StateStopping, "Stopping"},
		{StateStopped, "Stopped"},
		{AppState(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
