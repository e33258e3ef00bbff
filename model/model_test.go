package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFilm_NullableRating(t *testing.T) {
	var f Film
	require.NoError(t, json.Unmarshal([]byte(`{"uuid":"1","title":"The Star","imdb_rating":null}`), &f))
	assert.Nil(t, f.IMDBRating)

	require.NoError(t, json.Unmarshal([]byte(`{"uuid":"1","title":"The Star","imdb_rating":0}`), &f))
	require.NotNil(t, f.IMDBRating)
	assert.Equal(t, 0.0, *f.IMDBRating)
}

func TestGenre_DescriptionOmitted(t *testing.T) {
	b, err := json.Marshal(Genre{UUID: "g1", Name: "Action"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"g1","name":"Action"}`, string(b))
}

func TestPerson_Detail(t *testing.T) {
	p := Person{
		UUID:     "p1",
		FullName: "Antonio Banderas",
		Films: []FilmForPerson{
			{UUID: "f1", Title: "Zorro", IMDBRating: ptr(8.0), Roles: []string{"actor", "director"}},
			{UUID: "f2", Title: "Spy kids", IMDBRating: ptr(1.0), Roles: []string{"actor", "writer"}},
		},
	}

	d := p.Detail()
	assert.Equal(t, []PersonFilmRole{
		{UUID: "f1", Roles: []string{"actor", "director"}},
		{UUID: "f2", Roles: []string{"actor", "writer"}},
	}, d.Films)

	assert.Equal(t, []FilmShort{
		{UUID: "f1", Title: "Zorro", IMDBRating: ptr(8.0)},
		{UUID: "f2", Title: "Spy kids", IMDBRating: ptr(1.0)},
	}, ShortPersonFilms(p.Films))
}

func TestPerson_DetailWithoutFilms(t *testing.T) {
	b, err := json.Marshal(Person{UUID: "p1", FullName: "Brad Pitt"}.Detail())
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"p1","full_name":"Brad Pitt","films":null}`, string(b))
}
