package service

import (
	"context"
	"time"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/search"
)

const FilmPrefix = "FilmService"

// FilmService 影片读取
type FilmService struct {
	base
}

func NewFilmService(c *cache.ModelCache, store search.Store, index string, ttl time.Duration, log *logger.CtxZapLogger) *FilmService {
	return &FilmService{base: newBase(c, store, index, FilmPrefix, ttl, log)}
}

// GetByID 按 id 取影片
func (s *FilmService) GetByID(ctx context.Context, id string) (model.Film, bool, error) {
	return readThrough(ctx, &s.base, s.key(id), func(ctx context.Context) (model.Film, bool) {
		return search.GetByID[model.Film](ctx, s.store, s.index, id)
	})
}

// GetFilms 影片列表，genre 为空时不过滤；sort 形如 "-imdb_rating"
func (s *FilmService) GetFilms(ctx context.Context, pageNumber, pageSize int, genre *string, sort string) ([]model.Film, bool, error) {
	srt, err := search.ParseSort(sort)
	if err != nil {
		return nil, false, err
	}
	var filter *search.Filter
	if genre != nil {
		filter = search.GenreFilter(*genre)
	}
	page := search.Page{Number: pageNumber, Size: pageSize}

	key := s.key(pageNumber, pageSize, genre, sort)
	return readThroughList(ctx, &s.base, key, func(ctx context.Context) ([]model.Film, bool) {
		return search.GetAll[model.Film](ctx, s.store, s.index, page, filter, srt)
	})
}

// Search 按 field 模糊搜索，query 为空时等同于不过滤的列表
func (s *FilmService) Search(ctx context.Context, pageNumber, pageSize int, query, field string) ([]model.Film, bool, error) {
	page := search.Page{Number: pageNumber, Size: pageSize}
	return readThroughList(ctx, &s.base, s.key(pageNumber, pageSize, query), func(ctx context.Context) ([]model.Film, bool) {
		return search.SearchByQuery[model.Film](ctx, s.store, s.index, page, field, query, nil)
	})
}
