package swagger

import "strings"

// SwaggerInfo 文档元信息，覆盖 docs 包生成时写入的默认值
type SwaggerInfo struct {
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Version     string   `mapstructure:"version"`
	Host        string   `mapstructure:"host"`
	BasePath    string   `mapstructure:"base_path"`
	Schemes     []string `mapstructure:"schemes"`
}

// Config is the swagger section
type Config struct {
	Enabled              bool   `mapstructure:"enabled"`
	UIPath               string `mapstructure:"ui_path"`
	SpecPath             string `mapstructure:"spec_path"`
	DeepLinking          bool   `mapstructure:"deep_linking"`
	PersistAuthorization bool   `mapstructure:"persist_authorization"`
	// DocExpansion list / full / none
	DocExpansion string      `mapstructure:"doc_expansion"`
	Info         SwaggerInfo `mapstructure:"info"`
}

// DefaultConfig is disabled
func DefaultConfig() Config {
	return Config{
		Enabled:              false,
		UIPath:               "/swagger/*any",
		SpecPath:             "/openapi.json",
		DeepLinking:          true,
		PersistAuthorization: true,
		DocExpansion:         "list",
		Info:                 DefaultSwaggerInfo(),
	}
}

// DefaultSwaggerInfo default metadata
func DefaultSwaggerInfo() SwaggerInfo {
	return SwaggerInfo{
		Title:       "Content API",
		Description: "Read-only film, genre and person API",
		Version:     "1.0.0",
		BasePath:    "/api/v1",
		Schemes:     []string{"http", "https"},
	}
}

// ApplyDefaults fills empty fields
func (c *Config) ApplyDefaults() {
	if c.UIPath == "" {
		c.UIPath = "/swagger/*any"
	}
	if c.SpecPath == "" {
		c.SpecPath = "/openapi.json"
	}
	if c.DocExpansion == "" {
		c.DocExpansion = "list"
	}
}

// Validate UI 路径必须以通配段结尾，gin-swagger 靠它取文件名
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !strings.HasSuffix(c.UIPath, "/*any") {
		return ErrConfigInvalid.WithMsgf("ui_path must end with /*any, got %q", c.UIPath)
	}
	switch c.DocExpansion {
	case "", "list", "full", "none":
	default:
		return ErrConfigInvalid.WithMsgf("unknown doc_expansion %q", c.DocExpansion)
	}
	return nil
}
