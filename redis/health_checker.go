package redis

import (
	"context"
	"errors"
	"fmt"
)

var errNoManager = errors.New("redis manager not initialized")

// HealthChecker pings every instance and joins the failures
type HealthChecker struct {
	manager *Manager
}

func NewHealthChecker(manager *Manager) *HealthChecker {
	return &HealthChecker{manager: manager}
}

func (h *HealthChecker) Name() string { return "redis" }

func (h *HealthChecker) Check(ctx context.Context) error {
	if h.manager == nil {
		return errNoManager
	}
	var errs []error
	for _, name := range h.manager.InstanceNames() {
		if err := h.manager.Client(name).Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
