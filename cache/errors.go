package cache

import (
	"net/http"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

// Cache error codes: 70xxxx
const (
	ErrCodeCacheMiss     = 1
	ErrCodeEngineGet     = 2
	ErrCodeEngineSet     = 3
	ErrCodeSerialize     = 4
	ErrCodeDeserialize   = 5
	ErrCodeConfigInvalid = 6
	ErrCodeKeyMisuse     = 7
)

var (
	// ErrCacheMiss 未命中，只在 Engine 内部与 ModelCache 之间使用
	ErrCacheMiss = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeCacheMiss,
		"cache", "error.cache.miss", "缓存未命中", http.StatusOK))

	// ErrEngineGet 读缓存失败（连接断开、类型错误等）
	ErrEngineGet = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeEngineGet,
		"cache", "error.cache.engine_get", "缓存读取失败", http.StatusInternalServerError))

	// ErrEngineSet write failed
	ErrEngineSet = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeEngineSet,
		"cache", "error.cache.engine_set", "缓存写入失败", http.StatusInternalServerError))

	ErrSerialize = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeSerialize,
		"cache", "error.cache.serialize", "序列化失败", http.StatusInternalServerError))

	ErrDeserialize = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeDeserialize,
		"cache", "error.cache.deserialize", "反序列化失败", http.StatusInternalServerError))

	ErrConfigInvalid = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeConfigInvalid,
		"cache", "error.cache.config_invalid", "缓存配置无效", http.StatusInternalServerError))

	// ErrKeyMisuse key 构造参数错误，属于编程错误，BuildKey 直接 panic
	ErrKeyMisuse = errcode.Register(errcode.New(errcode.ModuleCache, ErrCodeKeyMisuse,
		"cache", "error.cache.key_misuse", "缓存 key 构造参数错误", http.StatusInternalServerError))
)
