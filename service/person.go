package service

import (
	"context"
	"time"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/search"
)

const (
	PersonPrefix      = "PersonService"
	PersonFilmsPrefix = PersonPrefix + "_films"
)

// PersonService 人员读取
type PersonService struct {
	base
	films base
}

func NewPersonService(c *cache.ModelCache, store search.Store, index string, ttl time.Duration, log *logger.CtxZapLogger) *PersonService {
	return &PersonService{
		base:  newBase(c, store, index, PersonPrefix, ttl, log),
		films: newBase(c, store, index, PersonFilmsPrefix, ttl, log),
	}
}

func (s *PersonService) GetByID(ctx context.Context, id string) (model.Person, bool, error) {
	return readThrough(ctx, &s.base, s.key(id), func(ctx context.Context) (model.Person, bool) {
		return search.GetByID[model.Person](ctx, s.store, s.index, id)
	})
}

func (s *PersonService) Search(ctx context.Context, pageNumber, pageSize int, query, field string) ([]model.Person, bool, error) {
	page := search.Page{Number: pageNumber, Size: pageSize}
	return readThroughList(ctx, &s.base, s.key(pageNumber, pageSize, query), func(ctx context.Context) ([]model.Person, bool) {
		return search.SearchByQuery[model.Person](ctx, s.store, s.index, page, field, query, nil)
	})
}

// GetPersonFilms 人员参与的影片
// 未命中时从检索服务取完整的人员文档再取出 films；人员不存在与没有影片一样视为不存在。
// 结果只缓存在 PersonService_films 前缀下，不会写入人员 key
func (s *PersonService) GetPersonFilms(ctx context.Context, id string) ([]model.FilmForPerson, bool, error) {
	return readThroughList(ctx, &s.films, s.films.key(id), func(ctx context.Context) ([]model.FilmForPerson, bool) {
		p, ok := search.GetByID[model.Person](ctx, s.store, s.index, id)
		if !ok || len(p.Films) == 0 {
			return nil, false
		}
		return p.Films, true
	})
}
