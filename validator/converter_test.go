package validator

import (
	"errors"
	"net/http"
	"strconv"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

type pageReq struct {
	PageNumber int
	PageSize   int
	Genre      *string
	Sort       string
	Query      string
	ID         string
}

func (r pageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PageNumber, PageRange),
		validation.Field(&r.PageSize, PageRange),
		validation.Field(&r.Genre, UUID),
		validation.Field(&r.Sort, SortRule()),
		validation.Field(&r.Query, QueryRule()),
		validation.Field(&r.ID, UUID),
	)
}

func str(s string) *string { return &s }

func TestValidateRequest(t *testing.T) {
	valid := pageReq{PageNumber: 1, PageSize: 50, Sort: "-imdb_rating", ID: "3d8d9bf5-0d90-4353-88ba-4ccc5d2c07ff"}

	long := make([]byte, MaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name  string
		mod   func(r *pageReq)
		field string
	}{
		{"合法请求", func(r *pageReq) {}, ""},
		{"页码为 0", func(r *pageReq) { r.PageNumber = 0 }, "PageNumber"},
		{"页码超过 100", func(r *pageReq) { r.PageNumber = 101 }, "PageNumber"},
		{"每页数量超过 100", func(r *pageReq) { r.PageSize = 1000 }, "PageSize"},
		{"每页数量为负", func(r *pageReq) { r.PageSize = -1 }, "PageSize"},
		{"边界 100 合法", func(r *pageReq) { r.PageNumber, r.PageSize = 100, 100 }, ""},
		{"类型 id 非 UUID", func(r *pageReq) { r.Genre = str("action") }, "Genre"},
		{"类型 id 合法", func(r *pageReq) { r.Genre = str("6c162475-c7ed-4461-9184-001ef3d9f26e") }, ""},
		{"UUID 不带连字符", func(r *pageReq) { r.ID = "3d8d9bf50d90435388ba4ccc5d2c07ff" }, "ID"},
		{"未知排序", func(r *pageReq) { r.Sort = "rating" }, "Sort"},
		{"按标题排序", func(r *pageReq) { r.Sort = "title.raw" }, ""},
		{"搜索词过长", func(r *pageReq) { r.Query = string(long) }, "Query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mod(&r)
			err := ValidateRequest(r)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, http.StatusUnprocessableEntity, errcode.HTTPStatusOf(err))

			le, ok := errcode.As(err)
			require.True(t, ok)
			fields, _ := le.Data()["fields"].(map[string]string)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestBindError(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	err := BindError(cause)
	assert.True(t, errors.Is(err, ErrBind))
	assert.Equal(t, http.StatusUnprocessableEntity, errcode.HTTPStatusOf(err))
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}
