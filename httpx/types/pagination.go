// Package types holds shared HTTP request types
package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KOMKZ/go-yogan-content/validator"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 50
)

// PageQuery page_number / page_size 分页参数
// 指针区分“未传”与“传了 0”：未传取默认值，传了非法值返回 422
type PageQuery struct {
	PageNumber *int `form:"page_number" json:"page_number"`
	PageSize   *int `form:"page_size" json:"page_size"`
}

// ValidationRules 供内嵌 PageQuery 的请求拼进 ValidateStruct
func (p *PageQuery) ValidationRules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&p.PageNumber, validator.PageRange),
		validation.Field(&p.PageSize, validator.PageRange),
	}
}

// ApplyDefaults fills unset paging values
func (p *PageQuery) ApplyDefaults() {
	if p.PageNumber == nil {
		n := DefaultPageNumber
		p.PageNumber = &n
	}
	if p.PageSize == nil {
		n := DefaultPageSize
		p.PageSize = &n
	}
}

// Number is the 1-based page
func (p *PageQuery) Number() int {
	if p.PageNumber == nil {
		return DefaultPageNumber
	}
	return *p.PageNumber
}

// Size is the page size
func (p *PageQuery) Size() int {
	if p.PageSize == nil {
		return DefaultPageSize
	}
	return *p.PageSize
}

// Offset of the first item
func (p *PageQuery) Offset() int {
	return (p.Number() - 1) * p.Size()
}
