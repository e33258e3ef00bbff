package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/validator"
)

// Parse 提取请求参数（path + query + body）
// 支持 uri/form/json tag；类型不匹配（如 page_number=abc）返回 422
func Parse(c *gin.Context, req any) error {
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(req); err != nil {
			return validator.BindError(err)
		}
	}

	if err := c.ShouldBindQuery(req); err != nil {
		return validator.BindError(err)
	}

	// 只有 Content-Length > 0 时才解析 body
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			return validator.BindError(err)
		}
	}

	return nil
}
