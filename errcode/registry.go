package errcode

import (
	"fmt"
	"sync"
)

// 模块码分配，新增模块在这里登记，避免两个包抢同一段号码
const (
	ModuleValidator = 1
	ModuleCache     = 70
	ModuleSearch    = 71
	ModuleService   = 72
	ModuleBreaker   = 73
	ModuleSwagger   = 80
)

// Registry maps codes to module:msgKey
type Registry struct {
	mu    sync.RWMutex
	codes map[int]string // code -> module:msgKey
}

var globalRegistry = &Registry{codes: make(map[int]string)}

// Register adds err to the global registry and panics on conflict
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register 登记错误码
// 同一 code 对应不同的 module:msgKey 视为编程错误，直接 panic；完全相同则幂等
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := err.Module() + ":" + err.MsgKey()
	if existing, ok := r.codes[err.Code()]; ok {
		if existing != key {
			panic(fmt.Sprintf("error code conflict: code %d is already registered as %s, cannot register as %s",
				err.Code(), existing, key))
		}
		return err
	}
	r.codes[err.Code()] = key
	return err
}

// Lookup returns the module:msgKey registered for code
func (r *Registry) Lookup(code int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.codes[code]
	return key, ok
}

// Count of registered codes
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// LookupCode queries the global registry
func LookupCode(code int) (string, bool) {
	return globalRegistry.Lookup(code)
}
