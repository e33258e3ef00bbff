package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/service"
)

const filmSearchField = "title"

type FilmHandler struct {
	films *service.FilmService
}

func NewFilmHandler(films *service.FilmService) *FilmHandler {
	return &FilmHandler{films: films}
}

// Get 影片详情
//
//	@Summary	影片详情
//	@Tags		films
//	@Produce	json
//	@Param		film_id	path		string	true	"film uuid"
//	@Success	200		{object}	httpx.Response{data=model.Film}
//	@Failure	404		{object}	httpx.Response
//	@Failure	422		{object}	httpx.Response
//	@Router		/films/{film_id} [get]
func (h *FilmHandler) Get(c *gin.Context, req *FilmIDRequest) (*model.Film, error) {
	film, ok, err := h.films.GetByID(c.Request.Context(), req.FilmID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrFilmNotFound
	}
	return &film, nil
}

// List 影片列表
//
//	@Summary	影片列表
//	@Tags		films
//	@Produce	json
//	@Param		page_number	query		int		false	"page number"	minimum(1)	maximum(100)	default(1)
//	@Param		page_size	query		int		false	"page size"		minimum(1)	maximum(100)	default(50)
//	@Param		genre		query		string	false	"genre uuid"
//	@Param		sort		query		string	false	"sort"	Enums(imdb_rating, -imdb_rating, title.raw, -title.raw)	default(-imdb_rating)
//	@Success	200			{object}	httpx.Response{data=[]model.FilmShort}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/films/ [get]
func (h *FilmHandler) List(c *gin.Context, req *FilmListRequest) ([]model.FilmShort, error) {
	films, ok, err := h.films.GetFilms(c.Request.Context(), req.Number(), req.Size(), req.Genre, req.Sort)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrFilmsNotFound
	}
	return model.ShortFilms(films), nil
}

// Search 按片名模糊搜索
//
//	@Summary	搜索影片
//	@Tags		films
//	@Produce	json
//	@Param		query		query		string	false	"search text"	maxlength(256)
//	@Param		page_number	query		int		false	"page number"	minimum(1)	maximum(100)	default(1)
//	@Param		page_size	query		int		false	"page size"		minimum(1)	maximum(100)	default(50)
//	@Success	200			{object}	httpx.Response{data=[]model.FilmShort}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/films/search/ [get]
func (h *FilmHandler) Search(c *gin.Context, req *SearchRequest) ([]model.FilmShort, error) {
	films, ok, err := h.films.Search(c.Request.Context(), req.Number(), req.Size(), req.Query, filmSearchField)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrFilmsNotFound
	}
	return model.ShortFilms(films), nil
}
