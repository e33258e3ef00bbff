package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/service"
)

type GenreHandler struct {
	genres *service.GenreService
}

func NewGenreHandler(genres *service.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// Get 类型详情
//
//	@Summary	类型详情
//	@Tags		genres
//	@Produce	json
//	@Param		genre_id	path		string	true	"genre uuid"
//	@Success	200			{object}	httpx.Response{data=model.Genre}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/genres/{genre_id} [get]
func (h *GenreHandler) Get(c *gin.Context, req *GenreIDRequest) (*model.Genre, error) {
	genre, ok, err := h.genres.GetByID(c.Request.Context(), req.GenreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrGenreNotFound
	}
	return &genre, nil
}

// List 类型列表
//
//	@Summary	类型列表
//	@Tags		genres
//	@Produce	json
//	@Param		page_number	query		int	false	"page number"	minimum(1)	maximum(100)	default(1)
//	@Param		page_size	query		int	false	"page size"		minimum(1)	maximum(100)	default(50)
//	@Success	200			{object}	httpx.Response{data=[]model.Genre}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/genres/ [get]
func (h *GenreHandler) List(c *gin.Context, req *PageRequest) ([]model.Genre, error) {
	genres, ok, err := h.genres.GetGenres(c.Request.Context(), req.Number(), req.Size())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrGenresNotFound
	}
	return genres, nil
}
