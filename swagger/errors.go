package swagger

import (
	"net/http"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

var (
	// ErrConfigInvalid 配置错误
	ErrConfigInvalid = errcode.Register(errcode.New(
		errcode.ModuleSwagger, 1, "swagger", "swagger.config_invalid", "Swagger config invalid", http.StatusInternalServerError,
	))

	// ErrSwaggerDocNotFound 文档未注册
	ErrSwaggerDocNotFound = errcode.Register(errcode.New(
		errcode.ModuleSwagger, 3, "swagger", "swagger.doc_not_found", "Swagger documentation not found", http.StatusNotFound,
	))
)
