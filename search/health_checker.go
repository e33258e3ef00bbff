package search

import (
	"context"
	"errors"
)

// HealthChecker 检索服务健康检查
type HealthChecker struct {
	store Store
}

func NewHealthChecker(store Store) *HealthChecker {
	return &HealthChecker{store: store}
}

func (h *HealthChecker) Name() string {
	return "search"
}

func (h *HealthChecker) Check(ctx context.Context) error {
	if h.store == nil {
		return errors.New("search store not initialized")
	}
	return h.store.Ping(ctx)
}
