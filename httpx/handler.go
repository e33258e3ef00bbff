package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/validator"
)

// HandlerFunc is a typed handler.
// Req: request type (form/json/uri tags)
// Resp: response payload
type HandlerFunc[Req any, Resp any] func(c *gin.Context, req *Req) (Resp, error)

// Defaulter 校验通过后填充默认值
type Defaulter interface {
	ApplyDefaults()
}

// Wrap adapts a typed handler to gin: parse, validate, default, respond
func Wrap[Req any, Resp any](handler HandlerFunc[Req, Resp]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		if err := Parse(c, &req); err != nil {
			HandleError(c, err)
			return
		}

		if v, ok := any(&req).(validator.Validatable); ok {
			if err := validator.ValidateRequest(v); err != nil {
				HandleError(c, err)
				return
			}
		}

		if d, ok := any(&req).(Defaulter); ok {
			d.ApplyDefaults()
		}

		resp, err := handler(c, &req)
		if err != nil {
			HandleError(c, err)
			return
		}

		OkJson(c, resp)
	}
}
