package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/httpx"
	"github.com/KOMKZ/go-yogan-content/service"
)

// APIPrefix 接口前缀
const APIPrefix = "/api/v1"

// Register 注册 /api/v1 下的全部路由
func Register(router gin.IRouter, svcs *service.Services) {
	films := NewFilmHandler(svcs.Films)
	genres := NewGenreHandler(svcs.Genres)
	persons := NewPersonHandler(svcs.Persons)

	v1 := router.Group(APIPrefix)

	f := v1.Group("/films")
	f.GET("/", httpx.Wrap(films.List))
	f.GET("/search/", httpx.Wrap(films.Search))
	f.GET("/:film_id", httpx.Wrap(films.Get))

	g := v1.Group("/genres")
	g.GET("/", httpx.Wrap(genres.List))
	g.GET("/:genre_id", httpx.Wrap(genres.Get))

	p := v1.Group("/persons")
	p.GET("/search/", httpx.Wrap(persons.Search))
	p.GET("/:person_id", httpx.Wrap(persons.Get))
	p.GET("/:person_id/film/", httpx.Wrap(persons.Films))
}
