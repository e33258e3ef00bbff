// Package swagger 挂载 Swagger UI 与 OpenAPI 文档
package swagger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// Manager Swagger 管理器
type Manager struct {
	config Config
	info   SwaggerInfo
	// instance swag 注册名，对应 docs 包里的 InfoInstanceName
	instance string
	logger   *logger.CtxZapLogger
}

// NewManager creates the swagger manager
func NewManager(cfg Config, info SwaggerInfo, log *logger.CtxZapLogger) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		config:   cfg,
		info:     info,
		instance: swag.Name,
		logger:   log,
	}
}

// IsEnabled reports whether swagger is on
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// GetConfig returns the config
func (m *Manager) GetConfig() Config {
	return m.config
}

// GetInfo returns the API metadata
func (m *Manager) GetInfo() SwaggerInfo {
	return m.info
}

// SetupInfo 把配置里的元信息写进 docs 包的 swag.Spec
// 空字段保留生成时的值
func (m *Manager) SetupInfo(spec *swag.Spec) {
	if spec == nil {
		m.logger.Warn("swagger spec not registered")
		return
	}
	if m.info.Title != "" {
		spec.Title = m.info.Title
	}
	if m.info.Description != "" {
		spec.Description = m.info.Description
	}
	if m.info.Version != "" {
		spec.Version = m.info.Version
	}
	if m.info.Host != "" {
		spec.Host = m.info.Host
	}
	if m.info.BasePath != "" {
		spec.BasePath = m.info.BasePath
	}
	if len(m.info.Schemes) > 0 {
		spec.Schemes = m.info.Schemes
	}
	m.instance = spec.InstanceName()

	m.logger.Debug("Swagger info setup complete",
		zap.String("title", spec.Title),
		zap.String("version", spec.Version),
		zap.String("basePath", spec.BasePath))
}

// RegisterRoutes mounts the UI and spec routes
func (m *Manager) RegisterRoutes(router gin.IRoutes) {
	if !m.config.Enabled {
		m.logger.Debug("Swagger is disabled, skipping route registration")
		return
	}

	router.GET(m.config.UIPath, ginSwagger.WrapHandler(swaggerFiles.Handler, m.buildGinSwaggerOptions()...))
	if m.config.SpecPath != "" {
		router.GET(m.config.SpecPath, m.serveSpec)
	}

	m.logger.Info("Swagger routes registered",
		zap.String("ui_path", m.config.UIPath),
		zap.String("spec_path", m.config.SpecPath))
}

func (m *Manager) buildGinSwaggerOptions() []func(*ginSwagger.Config) {
	return []func(*ginSwagger.Config){
		ginSwagger.InstanceName(m.instance),
		ginSwagger.DeepLinking(m.config.DeepLinking),
		ginSwagger.PersistAuthorization(m.config.PersistAuthorization),
		ginSwagger.DocExpansion(m.config.DocExpansion),
	}
}

// serveSpec writes the OpenAPI JSON
func (m *Manager) serveSpec(c *gin.Context) {
	doc, err := swag.ReadDoc(m.instance)
	if err != nil {
		le := ErrSwaggerDocNotFound.Wrap(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": le.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

// Shutdown implements do.Shutdowner
func (m *Manager) Shutdown() error {
	if m == nil {
		return nil
	}
	m.logger.Debug("Swagger manager shutdown")
	return nil
}
