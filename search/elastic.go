package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/breaker"
	"github.com/KOMKZ/go-yogan-content/logger"
)

// ElasticStore 基于 Elasticsearch 的文档检索
type ElasticStore struct {
	failureRecorder

	client    *elasticsearch.Client
	transport *http.Transport
	breaker   *breaker.Breaker
}

// NewElasticStore 创建客户端，不发起连接；启动时由调用方 Ping
func NewElasticStore(cfg Config, log *logger.CtxZapLogger, meter metric.Meter) (*ElasticStore, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.RequestTimeout

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
		// 失败直接折叠成“不存在”，不做重试
		DisableRetry: true,
	})
	if err != nil {
		return nil, ErrConfigInvalid.Wrap(err)
	}

	return &ElasticStore{
		failureRecorder: newFailureRecorder(log, meter),
		client:          client,
		transport:       transport,
		breaker:         breaker.New(cfg.Breaker, log, meter),
	}, nil
}

func (s *ElasticStore) Name() string { return "elastic" }

// Breaker 按索引熔断，未启用时为关闭状态
func (s *ElasticStore) Breaker() *breaker.Breaker { return s.breaker }

// do 经过熔断器发起请求；传输错误与 5xx 计为后端失败
// 调用方自己取消或超时的请求不计入熔断，结果仍按不存在处理
func (s *ElasticStore) do(ctx context.Context, op, index string, call func() (*esapi.Response, error)) (*esapi.Response, bool) {
	permit, err := s.breaker.Allow(ctx, index)
	if err != nil {
		s.ReportFailure(ctx, op, index, err)
		return nil, false
	}
	res, err := call()
	if err != nil {
		if ctx.Err() != nil {
			s.breaker.Release(permit)
		} else {
			s.breaker.Record(ctx, permit, err)
		}
		s.ReportFailure(ctx, op, index, ErrTransport.Wrap(err))
		return nil, false
	}
	if res.StatusCode >= http.StatusInternalServerError {
		s.breaker.Record(ctx, permit, fmt.Errorf("status %d", res.StatusCode))
	} else {
		s.breaker.Record(ctx, permit, nil)
	}
	return res, true
}

func (s *ElasticStore) GetByID(ctx context.Context, index, id string) (json.RawMessage, bool) {
	res, ok := s.do(ctx, "get", index, func() (*esapi.Response, error) {
		return s.client.Get(index, id, s.client.Get.WithContext(ctx))
	})
	if !ok {
		return nil, false
	}
	defer res.Body.Close()

	var body struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		s.ReportFailure(ctx, "get", index, ErrDecode.Wrap(err))
		return nil, false
	}

	// 文档不存在是正常结果；索引不存在或其它错误才算失败
	if res.StatusCode == http.StatusNotFound && len(body.Error) == 0 {
		s.logger.DebugCtx(ctx, "document not found", zap.String("index", index), zap.String("id", id))
		return nil, false
	}
	if res.IsError() {
		s.ReportFailure(ctx, "get", index, ErrBadResponse.Wrap(
			fmt.Errorf("status %d: %s", res.StatusCode, body.Error)))
		return nil, false
	}
	if !body.Found || len(body.Source) == 0 {
		return nil, false
	}
	return body.Source, true
}

func (s *ElasticStore) GetAll(ctx context.Context, index string, page Page, filter *Filter, sort *Sort) ([]json.RawMessage, bool) {
	return s.search(ctx, "list", index, buildQuery(page, filterQuery(filter), sort))
}

func (s *ElasticStore) SearchByQuery(ctx context.Context, index string, page Page, field, query string, sort *Sort) ([]json.RawMessage, bool) {
	if query == "" {
		return s.GetAll(ctx, index, page, nil, sort)
	}
	return s.search(ctx, "search", index, buildQuery(page, matchQuery(field, query), sort))
}

func (s *ElasticStore) search(ctx context.Context, op, index string, body map[string]any) ([]json.RawMessage, bool) {
	payload, err := json.Marshal(body)
	if err != nil {
		s.ReportFailure(ctx, op, index, ErrDecode.Wrap(err))
		return nil, false
	}

	res, ok := s.do(ctx, op, index, func() (*esapi.Response, error) {
		return s.client.Search(
			s.client.Search.WithContext(ctx),
			s.client.Search.WithIndex(index),
			s.client.Search.WithBody(bytes.NewReader(payload)),
			s.client.Search.WithFilterPath("hits.hits._source"),
		)
	})
	if !ok {
		return nil, false
	}
	defer res.Body.Close()

	if res.IsError() {
		s.ReportFailure(ctx, op, index, ErrBadResponse.Wrap(responseError(res)))
		return nil, false
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		s.ReportFailure(ctx, op, index, ErrDecode.Wrap(err))
		return nil, false
	}
	if len(result.Hits.Hits) == 0 {
		return nil, false
	}

	docs := make([]json.RawMessage, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, true
}

func (s *ElasticStore) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return ErrTransport.Wrap(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return ErrBadResponse.Wrap(fmt.Errorf("ping status %d", res.StatusCode))
	}
	return nil
}

func (s *ElasticStore) Close() error {
	s.transport.CloseIdleConnections()
	return nil
}

func responseError(res *esapi.Response) error {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("status %d: %s", res.StatusCode, bytes.TrimSpace(b))
}

func buildQuery(page Page, query map[string]any, sort *Sort) map[string]any {
	body := map[string]any{
		"from":  page.Offset(),
		"size":  page.Size,
		"query": query,
	}
	if sort != nil {
		order := "asc"
		if sort.Desc {
			order = "desc"
		}
		body["sort"] = []any{
			map[string]any{sort.Field: map[string]any{"order": order}},
		}
	}
	return body
}

func filterQuery(f *Filter) map[string]any {
	if f == nil {
		return map[string]any{"match_all": map[string]any{}}
	}
	match := map[string]any{"match": map[string]any{f.Field: f.Value}}
	if f.NestedPath == "" {
		return match
	}
	return map[string]any{
		"nested": map[string]any{
			"path": f.NestedPath,
			"query": map[string]any{
				"bool": map[string]any{"must": []any{match}},
			},
		},
	}
}

func matchQuery(field, query string) map[string]any {
	return map[string]any{
		"match": map[string]any{
			field: map[string]any{
				"query":     query,
				"fuzziness": "auto",
			},
		},
	}
}
