package swagger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/KOMKZ/go-yogan-content/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testDoc = `{"swagger":"2.0","info":{"title":"{{.Title}}","version":"{{.Version}}"},"basePath":"{{.BasePath}}","paths":{}}`

func newTestSpec(name string) *swag.Spec {
	spec := &swag.Spec{
		Version:          "0.0.1",
		Title:            "generated",
		BasePath:         "/",
		InfoInstanceName: name,
		SwaggerTemplate:  testDoc,
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}
	swag.Register(spec.InstanceName(), spec)
	return spec
}

func TestNewManager(t *testing.T) {
	cfg := Config{Enabled: true}
	info := DefaultSwaggerInfo()

	mgr := NewManager(cfg, info, logger.NewNopLogger("swagger"))

	require.NotNil(t, mgr)
	assert.True(t, mgr.IsEnabled())
	assert.Equal(t, "/swagger/*any", mgr.GetConfig().UIPath)
	assert.Equal(t, info.Title, mgr.GetInfo().Title)
}

func TestManager_RegisterRoutes(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		paths   []string
	}{
		{"禁用时不注册", false, nil},
		{"启用时注册 UI 与 Spec", true, []string{"/swagger/*any", "/openapi.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := NewManager(Config{Enabled: tt.enabled}, DefaultSwaggerInfo(), logger.NewNopLogger("swagger"))
			engine := gin.New()
			mgr.RegisterRoutes(engine)

			var paths []string
			for _, r := range engine.Routes() {
				paths = append(paths, r.Path)
			}
			assert.ElementsMatch(t, tt.paths, paths)
		})
	}
}

func TestManager_SetupInfoAndServeSpec(t *testing.T) {
	spec := newTestSpec("content_test")
	info := SwaggerInfo{Title: "Content API", Version: "2.0.0", BasePath: "/api/v1"}
	mgr := NewManager(Config{Enabled: true}, info, logger.NewNopLogger("swagger"))
	mgr.SetupInfo(spec)

	engine := gin.New()
	mgr.RegisterRoutes(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		BasePath string `json:"basePath"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Content API", doc.Info.Title)
	assert.Equal(t, "2.0.0", doc.Info.Version)
	assert.Equal(t, "/api/v1", doc.BasePath)
}

func TestManager_SetupInfoKeepsGenerated(t *testing.T) {
	spec := newTestSpec("content_keep")
	mgr := NewManager(Config{Enabled: true}, SwaggerInfo{Version: "3.0.0"}, logger.NewNopLogger("swagger"))
	mgr.SetupInfo(spec)

	assert.Equal(t, "generated", spec.Title)
	assert.Equal(t, "3.0.0", spec.Version)
	assert.Equal(t, "/", spec.BasePath)

	mgr.SetupInfo(nil)
}

func TestManager_ServeSpec_NoDoc(t *testing.T) {
	mgr := NewManager(Config{Enabled: true}, DefaultSwaggerInfo(), logger.NewNopLogger("swagger"))
	mgr.instance = "not_registered"

	engine := gin.New()
	engine.GET("/openapi.json", mgr.serveSpec)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestManager_Shutdown(t *testing.T) {
	mgr := NewManager(DefaultConfig(), DefaultSwaggerInfo(), logger.NewNopLogger("swagger"))
	assert.NoError(t, mgr.Shutdown())
}
