package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/cache"
	"github.com/KOMKZ/go-yogan-content/model"
	"github.com/KOMKZ/go-yogan-content/service"
	"github.com/KOMKZ/go-yogan-content/testutil"
	"github.com/KOMKZ/go-yogan-content/validator"
)

const (
	filmArma     = "025c58cd-1b7e-43be-9ffb-8571a613579b"
	filmFight    = "2a090dde-f688-46fe-a9f4-b781a985275e"
	genreAction  = "3d8d9bf5-0d90-4353-88ba-4ccc5d2c07ff"
	personBay    = "e039eedf-4daf-452a-bf92-a0085c68e156"
	personNoFilm = "b5d2b63a-a8e4-4a5b-8b5c-0e8b9c6f1b6a"
	missingID    = "00000000-0000-0000-0000-000000000000"
)

func setupRouter(t *testing.T) (*gin.Engine, *testutil.ContentFixture) {
	t.Helper()
	fx := testutil.NewContentFixture(t)
	r := testutil.NewTestEngine()
	Register(r, fx.Services)
	return r, fx
}

func filmUUIDs(films []model.FilmShort) []string {
	ids := make([]string, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.UUID)
	}
	return ids
}

func TestFilmHandler_Get(t *testing.T) {
	r, fx := setupRouter(t)

	resp := testutil.GET("/api/v1/films/" + filmArma).Do(r)
	require.Equal(t, http.StatusOK, resp.Status(), resp.Body())

	var film model.Film
	require.NoError(t, resp.Data(&film))
	assert.Equal(t, "Armageddon", film.Title)
	require.NotNil(t, film.IMDBRating)
	assert.InDelta(t, 6.7, *film.IMDBRating, 1e-9)
	require.Len(t, film.Genre, 2)
	assert.Equal(t, "Michael Bay", film.Directors[0].FullName)

	// 第二次读走缓存
	assert.True(t, fx.Redis.Exists(cache.BuildKey(service.FilmPrefix, filmArma)))
	resp = testutil.GET("/api/v1/films/" + filmArma).Do(r)
	assert.Equal(t, http.StatusOK, resp.Status())
}

func TestFilmHandler_GetNotFound(t *testing.T) {
	r, fx := setupRouter(t)

	resp := testutil.GET("/api/v1/films/" + missingID).Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())

	env, err := resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, service.ErrFilmNotFound.Code(), env.Code)
	assert.Equal(t, "film not found", env.Msg)
	assert.Empty(t, fx.Redis.Keys(), "读不到的结果不写缓存")
}

func TestFilmHandler_List(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name  string
		query map[string]string
		want  []string
	}{
		{
			name: "默认按评分降序，空评分排最后",
			want: []string{
				filmFight,
				"0312ed51-8833-413f-bff5-0e139c11264a",
				"3d825f60-9fff-4dfe-b294-1a45fa1e115d",
				"46f15353-2add-415d-9782-fa9c5b8083d5",
				filmArma,
				"57beb3fd-b1c9-4f8a-9c06-2da13f95251c",
			},
		},
		{
			name:  "按类型过滤",
			query: map[string]string{"genre": genreAction},
			want: []string{
				"0312ed51-8833-413f-bff5-0e139c11264a",
				"46f15353-2add-415d-9782-fa9c5b8083d5",
				filmArma,
			},
		},
		{
			name:  "升序分页",
			query: map[string]string{"sort": "imdb_rating", "page_number": "2", "page_size": "2"},
			want: []string{
				"3d825f60-9fff-4dfe-b294-1a45fa1e115d",
				"0312ed51-8833-413f-bff5-0e139c11264a",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.GET("/api/v1/films/")
			for k, v := range tt.query {
				req.WithQuery(k, v)
			}
			resp := req.Do(r)
			require.Equal(t, http.StatusOK, resp.Status(), resp.Body())

			var films []model.FilmShort
			require.NoError(t, resp.Data(&films))
			assert.Equal(t, tt.want, filmUUIDs(films))
		})
	}
}

func TestFilmHandler_ListEmpty(t *testing.T) {
	r, _ := setupRouter(t)

	resp := testutil.GET("/api/v1/films/").WithQuery("genre", missingID).Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())

	resp = testutil.GET("/api/v1/films/").WithQuery("page_number", "100").Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())
}

func TestFilmHandler_Search(t *testing.T) {
	r, _ := setupRouter(t)

	resp := testutil.GET("/api/v1/films/search/").WithQuery("query", "star").Do(r)
	require.Equal(t, http.StatusOK, resp.Status(), resp.Body())

	var films []model.FilmShort
	require.NoError(t, resp.Data(&films))
	assert.ElementsMatch(t, []string{
		"0312ed51-8833-413f-bff5-0e139c11264a",
		"3d825f60-9fff-4dfe-b294-1a45fa1e115d",
	}, filmUUIDs(films))

	resp = testutil.GET("/api/v1/films/search/").WithQuery("query", "qwertyuiop").Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())
}

func TestHandlers_Validation(t *testing.T) {
	r, fx := setupRouter(t)

	tests := []struct {
		name  string
		path  string
		query map[string]string
	}{
		{name: "非法 film_id", path: "/api/v1/films/not-a-uuid"},
		{name: "非法 genre_id", path: "/api/v1/genres/123"},
		{name: "非法 person_id", path: "/api/v1/persons/xyz/film/"},
		{name: "page_number 为 0", path: "/api/v1/films/", query: map[string]string{"page_number": "0"}},
		{name: "page_size 超上限", path: "/api/v1/genres/", query: map[string]string{"page_size": "101"}},
		{name: "page_number 不是数字", path: "/api/v1/films/", query: map[string]string{"page_number": "abc"}},
		{name: "未知排序", path: "/api/v1/films/", query: map[string]string{"sort": "title"}},
		{name: "genre 不是 uuid", path: "/api/v1/films/", query: map[string]string{"genre": "action"}},
		{name: "搜索词过长", path: "/api/v1/persons/search/", query: map[string]string{"query": strings.Repeat("a", 257)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.GET(tt.path)
			for k, v := range tt.query {
				req.WithQuery(k, v)
			}
			resp := req.Do(r)
			require.Equal(t, http.StatusUnprocessableEntity, resp.Status(), resp.Body())

			env, err := resp.Envelope()
			require.NoError(t, err)
			assert.Contains(t, []int{validator.ErrValidation.Code(), validator.ErrBind.Code()}, env.Code)
		})
	}

	assert.Empty(t, fx.Redis.Keys(), "校验失败不访问缓存")
}

func TestGenreHandler(t *testing.T) {
	r, _ := setupRouter(t)

	resp := testutil.GET("/api/v1/genres/" + genreAction).Do(r)
	require.Equal(t, http.StatusOK, resp.Status())
	var genre model.Genre
	require.NoError(t, resp.Data(&genre))
	assert.Equal(t, "Action", genre.Name)

	resp = testutil.GET("/api/v1/genres/").Do(r)
	require.Equal(t, http.StatusOK, resp.Status())
	var genres []model.Genre
	require.NoError(t, resp.Data(&genres))
	assert.Len(t, genres, 3)

	resp = testutil.GET("/api/v1/genres/" + missingID).Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())

	resp = testutil.GET("/api/v1/genres/").WithQuery("page_number", "2").Do(r)
	assert.Equal(t, http.StatusNotFound, resp.Status())
}

func TestPersonHandler(t *testing.T) {
	r, fx := setupRouter(t)

	t.Run("详情只返回作品 id 与角色", func(t *testing.T) {
		resp := testutil.GET("/api/v1/persons/" + personBay).Do(r)
		require.Equal(t, http.StatusOK, resp.Status())

		var p model.PersonDetail
		require.NoError(t, resp.Data(&p))
		assert.Equal(t, "Michael Bay", p.FullName)
		require.Len(t, p.Films, 1)
		assert.Equal(t, filmArma, p.Films[0].UUID)
		assert.Equal(t, []string{"director", "writer"}, p.Films[0].Roles)
		assert.NotContains(t, resp.Body(), "Armageddon")
	})

	t.Run("作品列表", func(t *testing.T) {
		resp := testutil.GET("/api/v1/persons/" + personBay + "/film/").Do(r)
		require.Equal(t, http.StatusOK, resp.Status())

		var films []model.FilmShort
		require.NoError(t, resp.Data(&films))
		require.Len(t, films, 1)
		assert.Equal(t, "Armageddon", films[0].Title)
		assert.True(t, fx.Redis.Exists(cache.BuildKey(service.PersonFilmsPrefix, personBay)))
	})

	t.Run("没有作品返回 404", func(t *testing.T) {
		resp := testutil.GET("/api/v1/persons/" + personNoFilm + "/film/").Do(r)
		assert.Equal(t, http.StatusNotFound, resp.Status())
		assert.False(t, fx.Redis.Exists(cache.BuildKey(service.PersonFilmsPrefix, personNoFilm)))
	})

	t.Run("搜索", func(t *testing.T) {
		resp := testutil.GET("/api/v1/persons/search/").WithQuery("query", "brad pit").Do(r)
		require.Equal(t, http.StatusOK, resp.Status())

		var persons []model.PersonDetail
		require.NoError(t, resp.Data(&persons))
		require.NotEmpty(t, persons)
		assert.Equal(t, "Brad Pitt", persons[0].FullName)
	})
}

func TestHandlers_CacheFailure(t *testing.T) {
	r, fx := setupRouter(t)
	fx.Redis.Close()

	resp := testutil.GET("/api/v1/films/" + filmArma).Do(r)
	assert.Equal(t, http.StatusInternalServerError, resp.Status())
	assert.NotContains(t, resp.Body(), "connect", "不向外暴露内部错误")
}
