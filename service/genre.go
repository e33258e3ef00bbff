package service

import (
	"context"
	"time"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/search"
)

const GenrePrefix = "GenreService"

// GenreService 影片类型读取
type GenreService struct {
	base
}

func NewGenreService(c *cache.ModelCache, store search.Store, index string, ttl time.Duration, log *logger.CtxZapLogger) *GenreService {
	return &GenreService{base: newBase(c, store, index, GenrePrefix, ttl, log)}
}

func (s *GenreService) GetByID(ctx context.Context, id string) (model.Genre, bool, error) {
	return readThrough(ctx, &s.base, s.key(id), func(ctx context.Context) (model.Genre, bool) {
		return search.GetByID[model.Genre](ctx, s.store, s.index, id)
	})
}

func (s *GenreService) GetGenres(ctx context.Context, pageNumber, pageSize int) ([]model.Genre, bool, error) {
	page := search.Page{Number: pageNumber, Size: pageSize}
	return readThroughList(ctx, &s.base, s.key(pageNumber, pageSize), func(ctx context.Context) ([]model.Genre, bool) {
		return search.GetAll[model.Genre](ctx, s.store, s.index, page, nil, nil)
	})
}
