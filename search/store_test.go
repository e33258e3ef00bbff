package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	Store
	gets int
}

func (c *countingStore) GetByID(ctx context.Context, index, id string) (json.RawMessage, bool) {
	c.gets++
	return c.Store.GetByID(ctx, index, id)
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 50}.Offset())
	assert.Equal(t, 4, Page{Number: 2, Size: 4}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Size: 10}.Offset())
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		token   string
		want    *Sort
		wantErr bool
	}{
		{"", nil, false},
		{"imdb_rating", &Sort{Field: "imdb_rating"}, false},
		{"-imdb_rating", &Sort{Field: "imdb_rating", Desc: true}, false},
		{"title.raw", &Sort{Field: "title.raw"}, false},
		{"-title.raw", &Sort{Field: "title.raw", Desc: true}, false},
		{"title", nil, true},
		{"--imdb_rating", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseSort(tt.token)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSort))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.token, got.String())
		})
	}
}

func TestTypedHelpers_DecodeFailure(t *testing.T) {
	s := NewMemoryStore(nil, nil)
	require.NoError(t, s.Put("movies", map[string]any{"uuid": "f1", "title": 42}))

	type film struct {
		UUID  string `json:"uuid"`
		Title string `json:"title"`
	}
	_, ok := GetByID[film](context.Background(), s, "movies", "f1")
	assert.False(t, ok)

	_, ok = GetAll[film](context.Background(), s, "movies", Page{Number: 1, Size: 10}, nil, nil)
	assert.False(t, ok)
}

func TestTypedHelpers_WrappedStore(t *testing.T) {
	s := &countingStore{Store: seededStore(t)}
	_, ok := GetByID[map[string]any](context.Background(), s, "genres", genreAction)
	assert.True(t, ok)
	assert.Equal(t, 1, s.gets)
}
