// Package search 文档检索：按 id 取文档、分页列表、模糊搜索
//
// 所有失败（文档不存在、索引不存在、连接失败、解码失败）对调用方都表现为“不存在”，
// 非正常的失败会记 WARN 日志并计入 search_failures_total。
package search

import (
	"context"
	"encoding/json"
	"strings"
)

// Store 文档检索接口，返回索引里的原始文档
type Store interface {
	// GetByID 按文档 id 取单个文档
	GetByID(ctx context.Context, index, id string) (json.RawMessage, bool)
	// GetAll 分页列表，filter 与 sort 可为 nil；没有命中视为不存在
	GetAll(ctx context.Context, index string, page Page, filter *Filter, sort *Sort) ([]json.RawMessage, bool)
	// SearchByQuery 对 field 做模糊匹配；query 为空时等同于不带过滤的 GetAll
	SearchByQuery(ctx context.Context, index string, page Page, field, query string, sort *Sort) ([]json.RawMessage, bool)

	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// Page 分页参数，页码从 1 开始
type Page struct {
	Number int
	Size   int
}

// Offset 跳过的文档数
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Sort 排序
type Sort struct {
	Field string
	Desc  bool
}

// 允许的排序字段
var sortFields = map[string]bool{
	"imdb_rating": true,
	"title.raw":   true,
}

// ParseSort 解析排序参数，前导 '-' 表示降序；空字符串表示不排序
func ParseSort(token string) (*Sort, error) {
	if token == "" {
		return nil, nil
	}
	s := &Sort{Field: token}
	if strings.HasPrefix(token, "-") {
		s.Field = token[1:]
		s.Desc = true
	}
	if !sortFields[s.Field] {
		return nil, ErrInvalidSort.WithMsgf("unsupported sort: %s", token)
	}
	return s, nil
}

// String 还原成请求里的写法
func (s *Sort) String() string {
	if s == nil {
		return ""
	}
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

// Filter 字段等值过滤；NestedPath 非空时在嵌套对象数组内匹配
type Filter struct {
	NestedPath string
	Field      string
	Value      string
}

// GenreFilter 影片按类型过滤
func GenreFilter(genreUUID string) *Filter {
	return &Filter{NestedPath: "genre", Field: "genre.uuid", Value: genreUUID}
}

// FailureReporter 记录被折叠成“不存在”的失败
type FailureReporter interface {
	ReportFailure(ctx context.Context, op, index string, err error)
}

func reportDecode(ctx context.Context, s Store, op, index string, err error) {
	if r, ok := s.(FailureReporter); ok {
		r.ReportFailure(ctx, op, index, ErrDecode.Wrap(err))
	}
}

// GetByID 取单个文档并解码
func GetByID[T any](ctx context.Context, s Store, index, id string) (T, bool) {
	var zero T
	raw, ok := s.GetByID(ctx, index, id)
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		reportDecode(ctx, s, "get", index, err)
		return zero, false
	}
	return v, true
}

// GetAll 分页列表并解码
func GetAll[T any](ctx context.Context, s Store, index string, page Page, filter *Filter, sort *Sort) ([]T, bool) {
	raws, ok := s.GetAll(ctx, index, page, filter, sort)
	if !ok {
		return nil, false
	}
	return decodeAll[T](ctx, s, "list", index, raws)
}

// SearchByQuery 模糊搜索并解码
func SearchByQuery[T any](ctx context.Context, s Store, index string, page Page, field, query string, sort *Sort) ([]T, bool) {
	raws, ok := s.SearchByQuery(ctx, index, page, field, query, sort)
	if !ok {
		return nil, false
	}
	return decodeAll[T](ctx, s, "search", index, raws)
}

func decodeAll[T any](ctx context.Context, s Store, op, index string, raws []json.RawMessage) ([]T, bool) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			reportDecode(ctx, s, op, index, err)
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
