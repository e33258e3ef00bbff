package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/service"
)

const personSearchField = "full_name"

type PersonHandler struct {
	persons *service.PersonService
}

func NewPersonHandler(persons *service.PersonService) *PersonHandler {
	return &PersonHandler{persons: persons}
}

// Get 人员详情，作品只返回 id 与角色
//
//	@Summary	人员详情
//	@Tags		persons
//	@Produce	json
//	@Param		person_id	path		string	true	"person uuid"
//	@Success	200			{object}	httpx.Response{data=model.PersonDetail}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/persons/{person_id} [get]
func (h *PersonHandler) Get(c *gin.Context, req *PersonIDRequest) (*model.PersonDetail, error) {
	person, ok, err := h.persons.GetByID(c.Request.Context(), req.PersonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrPersonNotFound
	}
	d := person.Detail()
	return &d, nil
}

// Search 按姓名模糊搜索
//
//	@Summary	搜索人员
//	@Tags		persons
//	@Produce	json
//	@Param		query		query		string	false	"search text"	maxlength(256)
//	@Param		page_number	query		int		false	"page number"	minimum(1)	maximum(100)	default(1)
//	@Param		page_size	query		int		false	"page size"		minimum(1)	maximum(100)	default(50)
//	@Success	200			{object}	httpx.Response{data=[]model.PersonDetail}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/persons/search/ [get]
func (h *PersonHandler) Search(c *gin.Context, req *SearchRequest) ([]model.PersonDetail, error) {
	persons, ok, err := h.persons.Search(c.Request.Context(), req.Number(), req.Size(), req.Query, personSearchField)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrPersonsNotFound
	}
	return model.PersonDetails(persons), nil
}

// Films 人员参与的影片
//
//	@Summary	人员作品
//	@Tags		persons
//	@Produce	json
//	@Param		person_id	path		string	true	"person uuid"
//	@Success	200			{object}	httpx.Response{data=[]model.FilmShort}
//	@Failure	404			{object}	httpx.Response
//	@Failure	422			{object}	httpx.Response
//	@Router		/persons/{person_id}/film/ [get]
func (h *PersonHandler) Films(c *gin.Context, req *PersonIDRequest) ([]model.FilmShort, error) {
	films, ok, err := h.persons.GetPersonFilms(c.Request.Context(), req.PersonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrFilmsNotFound
	}
	return model.ShortPersonFilms(films), nil
}
