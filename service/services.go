package service

import (
	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/search"
)

// Services 三个实体服务，共用同一个缓存与检索实例
type Services struct {
	Films   *FilmService
	Genres  *GenreService
	Persons *PersonService
}

// New 每个实体使用自己的索引与 TTL
func New(c *cache.ModelCache, store search.Store, ttl cache.TTLConfig, indexes search.IndexConfig, log *logger.CtxZapLogger) *Services {
	if log == nil {
		log = logger.GetLogger("service")
	}
	return &Services{
		Films:   NewFilmService(c, store, indexes.Film, ttl.Film, log),
		Genres:  NewGenreService(c, store, indexes.Genre, ttl.Genre, log),
		Persons: NewPersonService(c, store, indexes.Person, ttl.Person, log),
	}
}
