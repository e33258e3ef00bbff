// Package validator 提供统一的参数校验和错误转换
package validator

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

var (
	// ErrValidation 参数校验失败，data.fields 带字段级详情
	ErrValidation = errcode.Register(errcode.New(errcode.ModuleValidator, 1010,
		"common", "error.common.validation_failed", "参数校验失败", http.StatusUnprocessableEntity))

	// ErrBind 参数无法解析（类型不匹配等）
	ErrBind = errcode.Register(errcode.New(errcode.ModuleValidator, 1011,
		"common", "error.common.bind_failed", "参数解析失败", http.StatusUnprocessableEntity))
)

// Validatable 可校验接口
type Validatable interface {
	Validate() error
}

// ValidateRequest 通用校验函数
// 将 ozzo-validation 错误转换为 LayeredError
func ValidateRequest(req Validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return ConvertValidationError(validationErrs)
	}
	return err
}

// ConvertValidationError 将 ozzo-validation 错误转换为 LayeredError
func ConvertValidationError(validationErrs validation.Errors) error {
	fields := make(map[string]string)
	for field, fieldErr := range validationErrs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}
	return ErrValidation.WithData("fields", fields)
}

// BindError 请求参数绑定失败
func BindError(err error) error {
	return ErrBind.Wrap(err).WithData("reason", err.Error())
}
