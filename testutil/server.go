package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestApp 可用于集成测试的应用
type TestApp interface {
	Setup(ctx context.Context) error
	// Start does not block; port 0 picks a free port
	Start() error
	Addr() string
	Engine() *gin.Engine
	Shutdown(ctx context.Context) error
}

// TestServer 真实监听端口的应用实例
type TestServer struct {
	App     TestApp
	BaseURL string
	Client  *http.Client
}

// NewTestServer 执行与生产一致的 Setup + Start，测试结束自动关闭
//
//	app := application.New(application.Options{Config: cfg})
//	srv, err := testutil.NewTestServer(t, app)
//	resp, err := srv.Get("/api/v1/films/")
func NewTestServer(t *testing.T, app TestApp) (*TestServer, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	if err := app.Setup(ctx); err != nil {
		return nil, err
	}
	if err := app.Start(); err != nil {
		return nil, err
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Shutdown(ctx)
	})

	return &TestServer{
		App:     app,
		BaseURL: "http://" + app.Addr(),
		Client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// MustNewTestServer fails the test on error
func MustNewTestServer(t *testing.T, app TestApp) *TestServer {
	t.Helper()
	server, err := NewTestServer(t, app)
	if err != nil {
		t.Fatalf("创建测试服务器失败: %v", err)
	}
	return server
}

// Get sends a real request to the bound port
func (ts *TestServer) Get(path string) (*http.Response, error) {
	resp, err := ts.Client.Get(ts.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return resp, nil
}

// Do runs on the engine without the network
func (ts *TestServer) Do(rb *RequestBuilder) *ResponseHelper {
	return rb.Do(ts.App.Engine())
}
