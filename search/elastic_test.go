package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/breaker"
	"github.com/KOMKZ/go-yogan-content/logger"
)

type fakeElastic struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request)
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func (f *fakeElastic) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.handler(w, r)
}

func (f *fakeElastic) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newElasticStore(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*ElasticStore, *fakeElastic) {
	t.Helper()
	fake := &fakeElastic{handler: handler}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewElasticStore(Config{
		Addresses:      []string{srv.URL},
		RequestTimeout: 2 * time.Second,
	}, logger.NewNopLogger("search"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, fake
}

func TestElasticStore_GetByID(t *testing.T) {
	store, fake := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/_doc/"+filmArma):
			_, _ = io.WriteString(w, `{"_index":"movies","_id":"`+filmArma+`","found":true,"_source":{"uuid":"`+filmArma+`","title":"Armageddon"}}`)
		case strings.HasPrefix(r.URL.Path, "/missing_index/"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"_index":"movies","_id":"x","found":false}`)
		}
	})
	ctx := context.Background()

	f, ok := GetByID[doc](ctx, store, "movies", filmArma)
	require.True(t, ok)
	assert.Equal(t, "Armageddon", f.Title)
	assert.Equal(t, "/movies/_doc/"+filmArma, fake.last().Path)

	_, ok = store.GetByID(ctx, "movies", "unknown")
	assert.False(t, ok)

	_, ok = store.GetByID(ctx, "missing_index", "x")
	assert.False(t, ok)
}

func TestElasticStore_GetAll(t *testing.T) {
	store, fake := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"uuid":"a","title":"A"}},{"_source":{"uuid":"b","title":"B"}}]}}`)
	})
	ctx := context.Background()
	srt, _ := ParseSort("-imdb_rating")

	got, ok := GetAll[doc](ctx, store, "movies", Page{Number: 2, Size: 4}, GenreFilter(genreAction), srt)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, titles(got))

	req := fake.last()
	assert.Equal(t, "/movies/_search", req.Path)
	assert.Contains(t, req.Query, "filter_path=hits.hits._source")
	assert.EqualValues(t, 4, req.Body["from"])
	assert.EqualValues(t, 4, req.Body["size"])

	wantQuery := map[string]any{
		"nested": map[string]any{
			"path": "genre",
			"query": map[string]any{
				"bool": map[string]any{
					"must": []any{
						map[string]any{"match": map[string]any{"genre.uuid": genreAction}},
					},
				},
			},
		},
	}
	assert.Equal(t, wantQuery, req.Body["query"])
	assert.Equal(t, []any{map[string]any{"imdb_rating": map[string]any{"order": "desc"}}}, req.Body["sort"])
}

func TestElasticStore_SearchByQuery(t *testing.T) {
	store, fake := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"uuid":"a","title":"Armageddon"}}]}}`)
	})
	ctx := context.Background()

	_, ok := store.SearchByQuery(ctx, "movies", Page{Number: 1, Size: 50}, "title", "magedDon", nil)
	require.True(t, ok)

	req := fake.last()
	assert.Equal(t, map[string]any{
		"match": map[string]any{
			"title": map[string]any{"query": "magedDon", "fuzziness": "auto"},
		},
	}, req.Body["query"])
	assert.NotContains(t, req.Body, "sort")

	// 空查询退化为不带过滤的列表
	_, ok = store.SearchByQuery(ctx, "movies", Page{Number: 1, Size: 50}, "title", "", nil)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, fake.last().Body["query"])
}

func TestElasticStore_EmptyHits(t *testing.T) {
	store, _ := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		// filter_path 过滤后没有命中时返回空对象
		_, _ = io.WriteString(w, `{}`)
	})
	_, ok := store.GetAll(context.Background(), "movies", Page{Number: 1, Size: 50}, nil, nil)
	assert.False(t, ok)
}

func TestElasticStore_Failures(t *testing.T) {
	log, logs := logger.NewObservedLogger("search")

	fake := &fakeElastic{handler: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"type":"search_phase_execution_exception"},"status":500}`)
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewElasticStore(Config{Addresses: []string{srv.URL}}, log, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := store.GetAll(ctx, "movies", Page{Number: 1, Size: 10}, nil, nil)
	assert.False(t, ok)
	_, ok = store.GetByID(ctx, "movies", "x")
	assert.False(t, ok)

	srv.Close()
	_, ok = store.SearchByQuery(ctx, "movies", Page{Number: 1, Size: 10}, "title", "star", nil)
	assert.False(t, ok)

	entries := logs.FilterMessage("search failure treated as absent").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "list", entries[0].ContextMap()["op"])
	assert.Equal(t, "movies", entries[0].ContextMap()["index"])
}

func TestElasticStore_Ping(t *testing.T) {
	store, fake := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, http.MethodHead, fake.last().Method)
	assert.Equal(t, "elastic", store.Name())
}

func TestElasticStore_Breaker(t *testing.T) {
	log, logs := logger.NewObservedLogger("search")

	fake := &fakeElastic{handler: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"type":"unavailable"},"status":503}`)
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewElasticStore(Config{
		Addresses: []string{srv.URL},
		Breaker: breaker.Config{
			Enabled:             true,
			ConsecutiveFailures: 2,
			OpenTimeout:         time.Minute,
			HalfOpenRequests:    1,
		},
	}, log, nil)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, ok := store.GetByID(ctx, "movies", "x")
		assert.False(t, ok)
	}

	// 第三次被熔断拦截，没有到达后端
	fake.mu.Lock()
	assert.Len(t, fake.requests, 2)
	fake.mu.Unlock()
	assert.Equal(t, breaker.StateOpen, store.Breaker().State("movies"))
	assert.Equal(t, breaker.StateClosed, store.Breaker().State("genres"))

	// 其他索引不受影响
	_, ok := store.GetAll(ctx, "genres", Page{Number: 1, Size: 10}, nil, nil)
	assert.False(t, ok)
	fake.mu.Lock()
	assert.Len(t, fake.requests, 3)
	fake.mu.Unlock()

	assert.Len(t, logs.FilterMessage("search failure treated as absent").All(), 4)
}

func TestElasticStore_BreakerIgnoresNotFound(t *testing.T) {
	store, _ := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"found":false}`)
	})
	store.breaker = breaker.New(breaker.Config{Enabled: true, ConsecutiveFailures: 1, OpenTimeout: time.Minute, HalfOpenRequests: 1}, nil, nil)

	for i := 0; i < 3; i++ {
		_, ok := store.GetByID(context.Background(), "movies", "missing")
		assert.False(t, ok)
	}
	assert.Equal(t, breaker.StateClosed, store.Breaker().State("movies"))
}

func TestElasticStore_BreakerIgnoresCallerTimeout(t *testing.T) {
	store, _ := newElasticStore(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"_index":"movies","_id":"`+filmArma+`","found":true,"_source":{"uuid":"`+filmArma+`","title":"Armageddon"}}`)
	})
	store.breaker = breaker.New(breaker.Config{Enabled: true, ConsecutiveFailures: 5, OpenTimeout: time.Minute, HalfOpenRequests: 1}, nil, nil)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, ok := store.GetByID(ctx, "movies", filmArma)
		cancel()
		assert.False(t, ok, "调用方超时按不存在处理")
	}
	assert.Equal(t, breaker.StateClosed, store.Breaker().State("movies"))

	doc, ok := store.GetByID(context.Background(), "movies", filmArma)
	require.True(t, ok)
	assert.Contains(t, string(doc), "Armageddon")
}
