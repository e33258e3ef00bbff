package search

import (
	"net/http"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

// 检索层错误码：71xxxx
// 这些错误只用于日志与配置校验，读接口本身不向上返回错误
var (
	ErrConfigInvalid = errcode.Register(errcode.New(errcode.ModuleSearch, 1,
		"search", "error.search.config_invalid", "检索配置无效", http.StatusInternalServerError))

	ErrInvalidSort = errcode.Register(errcode.New(errcode.ModuleSearch, 2,
		"search", "error.search.invalid_sort", "不支持的排序字段", http.StatusUnprocessableEntity))

	ErrTransport = errcode.Register(errcode.New(errcode.ModuleSearch, 3,
		"search", "error.search.transport", "检索服务请求失败", http.StatusInternalServerError))

	ErrBadResponse = errcode.Register(errcode.New(errcode.ModuleSearch, 4,
		"search", "error.search.bad_response", "检索服务返回错误", http.StatusInternalServerError))

	ErrDecode = errcode.Register(errcode.New(errcode.ModuleSearch, 5,
		"search", "error.search.decode", "文档解码失败", http.StatusInternalServerError))

	ErrSeed = errcode.Register(errcode.New(errcode.ModuleSearch, 6,
		"search", "error.search.seed", "加载种子数据失败", http.StatusInternalServerError))
)
