package health

import (
	"context"
	"maps"
	"sync"
	"time"
)

// Aggregator 并发执行所有检查项并汇总
type Aggregator struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []Checker
	metadata map[string]any
}

func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Aggregator{
		timeout:  timeout,
		metadata: make(map[string]any),
	}
}

// Register 追加检查项，nil 忽略
func (a *Aggregator) Register(checkers ...Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range checkers {
		if c != nil {
			a.checkers = append(a.checkers, c)
		}
	}
}

func (a *Aggregator) SetMetadata(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metadata[key] = value
}

// Check 在 timeout 内执行一轮检查
func (a *Aggregator) Check(ctx context.Context) *Response {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.mu.RLock()
	checkers := append([]Checker(nil), a.checkers...)
	metadata := maps.Clone(a.metadata)
	a.mu.RUnlock()

	results := make([]CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = run(ctx, c)
		}()
	}
	wg.Wait()

	resp := &Response{
		Status:   StatusHealthy,
		Checks:   make(map[string]CheckResult, len(results)),
		Metadata: metadata,
	}
	for _, r := range results {
		resp.Checks[r.Name] = r
		resp.Status = worse(resp.Status, r.Status)
	}
	resp.Timestamp = time.Now()
	resp.Duration = resp.Timestamp.Sub(start)
	return resp
}

func run(ctx context.Context, c Checker) CheckResult {
	start := time.Now()
	err := c.Check(ctx)
	r := CheckResult{
		Name:      c.Name(),
		Status:    StatusHealthy,
		Message:   "OK",
		Timestamp: start,
		Duration:  time.Since(start),
	}
	if err == nil {
		return r
	}
	r.Error = err.Error()
	r.Status = StatusUnhealthy
	r.Message = "check failed"
	return r
}

var severity = map[Status]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}

func worse(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}
