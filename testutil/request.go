package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
)

// RequestBuilder 构造只读 API 的请求，直接在 handler 上执行
type RequestBuilder struct {
	method string
	path   string
	header http.Header
	query  url.Values
}

func NewRequest(method, path string) *RequestBuilder {
	return &RequestBuilder{method: method, path: path, header: http.Header{}, query: url.Values{}}
}

func GET(path string) *RequestBuilder { return NewRequest(http.MethodGet, path) }

func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.header.Set(key, value)
	return rb
}

// WithQuery URL-encodes the value
func (rb *RequestBuilder) WithQuery(key, value string) *RequestBuilder {
	rb.query.Set(key, value)
	return rb
}

func (rb *RequestBuilder) WithTraceID(traceID string) *RequestBuilder {
	return rb.WithHeader("X-Trace-ID", traceID)
}

func (rb *RequestBuilder) target() string {
	if len(rb.query) == 0 {
		return rb.path
	}
	return rb.path + "?" + rb.query.Encode()
}

func (rb *RequestBuilder) Do(handler http.Handler) *ResponseHelper {
	req := httptest.NewRequest(rb.method, rb.target(), nil)
	req.Header = rb.header.Clone()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return &ResponseHelper{Recorder: w}
}

// Envelope httpx.Response 的测试侧镜像，Data 延迟解析
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// ResponseHelper 包装 ResponseRecorder
type ResponseHelper struct {
	Recorder *httptest.ResponseRecorder
}

func (rh *ResponseHelper) Status() int              { return rh.Recorder.Code }
func (rh *ResponseHelper) Body() string             { return rh.Recorder.Body.String() }
func (rh *ResponseHelper) Header(key string) string { return rh.Recorder.Header().Get(key) }

func (rh *ResponseHelper) JSON(v any) error {
	return json.Unmarshal(rh.Recorder.Body.Bytes(), v)
}

func (rh *ResponseHelper) Envelope() (Envelope, error) {
	var env Envelope
	err := rh.JSON(&env)
	return env, err
}

// Data decodes the envelope data
func (rh *ResponseHelper) Data(v any) error {
	env, err := rh.Envelope()
	if err != nil {
		return err
	}
	return json.Unmarshal(env.Data, v)
}

// NewTestEngine empty engine in TestMode
func NewTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
