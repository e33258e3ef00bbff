package validator

import (
	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinPage = 1
	MaxPage = 100

	MaxQueryLength = 256
)

// SortTokens 允许的排序参数
var SortTokens = []any{"imdb_rating", "-imdb_rating", "title.raw", "-title.raw"}

// UUID 标准 UUID 格式（带连字符）
var UUID = validation.By(func(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return validation.NewError("validation_is_uuid", "must be a valid UUID")
	}
	if s == "" {
		return nil
	}
	if len(s) != 36 {
		return validation.NewError("validation_is_uuid", "must be a valid UUID")
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_is_uuid", "must be a valid UUID")
	}
	return nil
})

// PageRange page_number / page_size 取值范围 [1,100]
// validation.Min 会跳过零值，这里 0 也要报错；nil 指针表示未传，跳过
var PageRange = validation.By(func(value any) error {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case *int:
		if v == nil {
			return nil
		}
		n = *v
	default:
		return validation.NewError("validation_page_range", "must be an integer")
	}
	if n < MinPage || n > MaxPage {
		return validation.NewError("validation_page_range", "must be between 1 and 100")
	}
	return nil
})

// SortRule 排序参数白名单
func SortRule() validation.Rule {
	return validation.In(SortTokens...).Error("must be one of imdb_rating, -imdb_rating, title.raw, -title.raw")
}

// QueryRule 搜索词长度上限
func QueryRule() validation.Rule {
	return validation.RuneLength(0, MaxQueryLength)
}
