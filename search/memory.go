package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"gopkg.in/yaml.v3"

	"github.com/KOMKZ/go-yogan-content/logger"
)

type memoryDoc struct {
	id     string
	raw    json.RawMessage
	fields map[string]any
}

type memoryIndex struct {
	docs []memoryDoc
	byID map[string]int
}

// MemoryStore 进程内的文档检索，用于本地运行与测试
// 支持嵌套过滤、排序、分页和 AUTO 模糊匹配
type MemoryStore struct {
	failureRecorder

	mu      sync.RWMutex
	indexes map[string]*memoryIndex
	closed  bool
}

func NewMemoryStore(log *logger.CtxZapLogger, meter metric.Meter) *MemoryStore {
	return &MemoryStore{
		failureRecorder: newFailureRecorder(log, meter),
		indexes:         make(map[string]*memoryIndex),
	}
}

func (s *MemoryStore) Name() string { return "memory" }

// Put 写入文档，文档必须带 uuid 字段；相同 uuid 覆盖原文档并保持原位置
// doc 可以是 json.RawMessage、[]byte 或任意可 JSON 序列化的值
func (s *MemoryStore) Put(index string, docs ...any) error {
	prepared := make([]memoryDoc, 0, len(docs))
	for _, d := range docs {
		raw, err := toRaw(d)
		if err != nil {
			return ErrSeed.Wrap(err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return ErrSeed.Wrap(err)
		}
		id, _ := fields["uuid"].(string)
		if id == "" {
			return ErrSeed.WithMsgf("document in index %s has no uuid", index)
		}
		prepared = append(prepared, memoryDoc{id: id, raw: raw, fields: fields})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.indexes[index]
	if !ok {
		idx = &memoryIndex{byID: make(map[string]int)}
		s.indexes[index] = idx
	}
	for _, d := range prepared {
		if pos, exists := idx.byID[d.id]; exists {
			idx.docs[pos] = d
			continue
		}
		idx.byID[d.id] = len(idx.docs)
		idx.docs = append(idx.docs, d)
	}
	return nil
}

// LoadFile 从 JSON 数组或 YAML 列表文件加载文档
func (s *MemoryStore) LoadFile(index, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrSeed.Wrap(err)
	}

	var docs []any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var items []map[string]any
		if err := yaml.Unmarshal(data, &items); err != nil {
			return ErrSeed.Wrap(fmt.Errorf("%s: %w", path, err))
		}
		for _, it := range items {
			docs = append(docs, it)
		}
	default:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return ErrSeed.Wrap(fmt.Errorf("%s: %w", path, err))
		}
		for _, it := range items {
			docs = append(docs, it)
		}
	}
	return s.Put(index, docs...)
}

// Count 索引中的文档数
func (s *MemoryStore) Count(index string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.indexes[index]; ok {
		return len(idx.docs)
	}
	return 0
}

func (s *MemoryStore) GetByID(ctx context.Context, index, id string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.lookup(ctx, "get", index)
	if !ok {
		return nil, false
	}
	pos, ok := idx.byID[id]
	if !ok {
		return nil, false
	}
	return idx.docs[pos].raw, true
}

func (s *MemoryStore) GetAll(ctx context.Context, index string, page Page, filter *Filter, sort *Sort) ([]json.RawMessage, bool) {
	return s.query(ctx, "list", index, page, sort, func(d memoryDoc) bool {
		return matchFilter(d.fields, filter)
	})
}

func (s *MemoryStore) SearchByQuery(ctx context.Context, index string, page Page, field, query string, sort *Sort) ([]json.RawMessage, bool) {
	if query == "" {
		return s.GetAll(ctx, index, page, nil, sort)
	}
	return s.query(ctx, "search", index, page, sort, func(d memoryDoc) bool {
		text, _ := lookupPath(d.fields, field).(string)
		return fuzzyMatch(query, text)
	})
}

func (s *MemoryStore) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrTransport.WithMsgf("memory store closed")
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// lookup 调用方需持有读锁
func (s *MemoryStore) lookup(ctx context.Context, op, index string) (*memoryIndex, bool) {
	if s.closed {
		s.ReportFailure(ctx, op, index, ErrTransport.WithMsgf("memory store closed"))
		return nil, false
	}
	idx, ok := s.indexes[index]
	if !ok {
		s.ReportFailure(ctx, op, index, ErrBadResponse.WithMsgf("no such index: %s", index))
		return nil, false
	}
	return idx, true
}

func (s *MemoryStore) query(ctx context.Context, op, index string, page Page, srt *Sort, match func(memoryDoc) bool) ([]json.RawMessage, bool) {
	s.mu.RLock()
	idx, ok := s.lookup(ctx, op, index)
	if !ok {
		s.mu.RUnlock()
		return nil, false
	}
	hits := make([]memoryDoc, 0, len(idx.docs))
	for _, d := range idx.docs {
		if match(d) {
			hits = append(hits, d)
		}
	}
	s.mu.RUnlock()

	if srt != nil {
		sortDocs(hits, srt)
	}

	from := page.Offset()
	if from >= len(hits) || page.Size <= 0 {
		return nil, false
	}
	to := from + page.Size
	if to > len(hits) {
		to = len(hits)
	}

	out := make([]json.RawMessage, 0, to-from)
	for _, d := range hits[from:to] {
		out = append(out, d.raw)
	}
	return out, true
}

func matchFilter(fields map[string]any, f *Filter) bool {
	if f == nil {
		return true
	}
	if f.NestedPath == "" {
		return fmt.Sprint(lookupPath(fields, f.Field)) == f.Value
	}
	items, _ := fields[f.NestedPath].([]any)
	sub := strings.TrimPrefix(f.Field, f.NestedPath+".")
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := lookupPath(obj, sub).(string); ok && v == f.Value {
			return true
		}
	}
	return false
}

// lookupPath 按点分路径取字段
func lookupPath(fields map[string]any, path string) any {
	var cur any = fields
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// sortDocs 字段缺失或为 null 的文档无论升降序都排在最后，同值按 uuid 升序
// keyword 子字段 "x.raw" 按 x 的小写值排序
func sortDocs(docs []memoryDoc, srt *Sort) {
	field := strings.TrimSuffix(srt.Field, ".raw")
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := sortValue(docs[i].fields, field), sortValue(docs[j].fields, field)
		switch {
		case a == nil && b == nil:
			return docs[i].id < docs[j].id
		case a == nil:
			return false
		case b == nil:
			return true
		}
		c := compareValues(a, b)
		if c == 0 {
			return docs[i].id < docs[j].id
		}
		if srt.Desc {
			return c > 0
		}
		return c < 0
	})
}

func sortValue(fields map[string]any, field string) any {
	switch v := lookupPath(fields, field).(type) {
	case string:
		return strings.ToLower(v)
	case float64:
		return v
	default:
		return nil
	}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return -1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		bv, ok := b.(string)
		if !ok {
			return 1
		}
		return strings.Compare(av, bv)
	}
	return 0
}

func toRaw(d any) (json.RawMessage, error) {
	switch v := d.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		return json.RawMessage(v), nil
	default:
		return json.Marshal(v)
	}
}
