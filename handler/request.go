// Package handler /api/v1 只读接口
package handler

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KOMKZ/go-yogan-content/httpx/types"
	"github.com/KOMKZ/go-yogan-content/validator"
)

const DefaultSort = "-imdb_rating"

// FilmIDRequest /films/:film_id
type FilmIDRequest struct {
	FilmID string `uri:"film_id" json:"film_id"`
}

func (r *FilmIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FilmID, validation.Required, validator.UUID),
	)
}

// GenreIDRequest /genres/:genre_id
type GenreIDRequest struct {
	GenreID string `uri:"genre_id" json:"genre_id"`
}

func (r *GenreIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.GenreID, validation.Required, validator.UUID),
	)
}

// PersonIDRequest /persons/:person_id 与 /persons/:person_id/film/
type PersonIDRequest struct {
	PersonID string `uri:"person_id" json:"person_id"`
}

func (r *PersonIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PersonID, validation.Required, validator.UUID),
	)
}

// PageRequest 只有分页参数的列表
type PageRequest struct {
	types.PageQuery
}

func (r *PageRequest) Validate() error {
	return validation.ValidateStruct(r, r.PageQuery.ValidationRules()...)
}

// FilmListRequest /films/
type FilmListRequest struct {
	types.PageQuery
	Genre *string `form:"genre" json:"genre"`
	Sort  string  `form:"sort" json:"sort"`
}

func (r *FilmListRequest) Validate() error {
	rules := append(r.PageQuery.ValidationRules(),
		validation.Field(&r.Genre, validator.UUID),
		validation.Field(&r.Sort, validator.SortRule()),
	)
	return validation.ValidateStruct(r, rules...)
}

func (r *FilmListRequest) ApplyDefaults() {
	r.PageQuery.ApplyDefaults()
	if r.Sort == "" {
		r.Sort = DefaultSort
	}
	if r.Genre != nil && *r.Genre == "" {
		r.Genre = nil
	}
}

// SearchRequest /films/search/ 与 /persons/search/
type SearchRequest struct {
	types.PageQuery
	Query string `form:"query" json:"query"`
}

func (r *SearchRequest) Validate() error {
	rules := append(r.PageQuery.ValidationRules(),
		validation.Field(&r.Query, validator.QueryRule()),
	)
	return validation.ValidateStruct(r, rules...)
}
