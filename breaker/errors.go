package breaker

import (
	"net/http"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

// ErrOpen is returned while the circuit is open
var ErrOpen = errcode.Register(errcode.New(errcode.ModuleBreaker, 1,
	"breaker", "error.breaker.open", "熔断已打开，请求被拒绝", http.StatusServiceUnavailable))
