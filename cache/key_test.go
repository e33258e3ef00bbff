package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	genre := "3d8d9bf5-0d90-4353-88ba-4ccc5d2c07ff"
	none := "None"
	var nilStr *string

	tests := []struct {
		name   string
		prefix string
		parts  []any
		want   string
	}{
		{"单个 id", "FilmService", []any{"abc"}, "FilmService-abc:"},
		{"分页列表", "GenreService", []any{1, 50}, "GenreService-1:50:"},
		{"可选参数为空", "FilmService", []any{1, 50, nilStr, "-imdb_rating"}, "FilmService-1:50:None:-imdb_rating:"},
		{"可选参数非空", "FilmService", []any{2, 10, &genre, "title.raw"}, "FilmService-2:10:" + genre + ":title.raw:"},
		{"nil 参数", "FilmService", []any{nil}, "FilmService-None:"},
		{"字面量 None 被转义", "FilmService", []any{none}, `FilmService-\None:`},
		{"冒号被转义", "FilmService", []any{1, 50, "a:b"}, `FilmService-1:50:a\:b:`},
		{"反斜杠被转义", "FilmService", []any{`a\`}, `FilmService-a\\:`},
		{"派生前缀", "PersonService_films", []any{"p1"}, "PersonService_films-p1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildKey(tt.prefix, tt.parts...))
		})
	}
}

func TestBuildKey_Deterministic(t *testing.T) {
	g := "g1"
	a := BuildKey("FilmService", 1, 50, &g, "-imdb_rating")
	g2 := "g1"
	b := BuildKey("FilmService", 1, 50, &g2, "-imdb_rating")
	assert.Equal(t, a, b)
}

func TestBuildKey_Injective(t *testing.T) {
	none := "None"
	var nilStr *string

	// 缺省参数与字面量 "None" 不能得到同一个 key
	assert.NotEqual(t,
		BuildKey("FilmService", 1, 50, nilStr, "-imdb_rating"),
		BuildKey("FilmService", 1, 50, &none, "-imdb_rating"))

	// 搜索 key（3 段）与列表 key（4 段）共用前缀，查询里的冒号不能伪造成列表 key
	assert.NotEqual(t,
		BuildKey("FilmService", 1, 50, "None:-imdb_rating"),
		BuildKey("FilmService", 1, 50, nilStr, "-imdb_rating"))

	assert.NotEqual(t,
		BuildKey("FilmService", "a", "b"),
		BuildKey("FilmService", "a:b"))

	assert.NotEqual(t,
		BuildKey("PersonService", "p1"),
		BuildKey("PersonService_films", "p1"))
}

func TestBuildKey_Misuse(t *testing.T) {
	assert.PanicsWithError(t, ErrKeyMisuse.WithMsgf("cache key prefix is required").Error(), func() {
		BuildKey("", "x")
	})
	assert.Panics(t, func() {
		BuildKey("FilmService")
	})
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "FilmService", KeyPrefix("FilmService-1:50:"))
	assert.Equal(t, "PersonService_films", KeyPrefix("PersonService_films-abc:"))
	assert.Equal(t, "plain", KeyPrefix("plain"))
}
