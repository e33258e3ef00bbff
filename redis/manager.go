// Package redis manages named Redis connections (standalone or cluster)
package redis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Manager owns the named Redis clients.
// Created once at startup; go-redis clients are safe for concurrent use and shared by all requests.
type Manager struct {
	clients map[string]redis.UniversalClient
	configs map[string]Config
	logger  *logger.CtxZapLogger
	mu      sync.RWMutex
}

// NewManager connects and pings every instance. On any failure the clients opened so far are closed.
func NewManager(ctx context.Context, configs map[string]Config, log *logger.CtxZapLogger, hooks ...redis.Hook) (*Manager, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	m := &Manager{
		clients: make(map[string]redis.UniversalClient, len(configs)),
		configs: make(map[string]Config, len(configs)),
		logger:  log,
	}

	for name, cfg := range configs {
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("invalid config for %s: %w", name, err)
		}

		client := newClient(cfg)
		for _, h := range hooks {
			client.AddHook(h)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = m.Close()
			return nil, fmt.Errorf("ping %s failed: %w", name, err)
		}

		m.clients[name] = client
		m.configs[name] = cfg
		log.InfoCtx(ctx, "Redis connection successful",
			zap.String("name", name),
			zap.String("mode", cfg.Mode),
			zap.Strings("addrs", cfg.Addrs))
	}
	return m, nil
}

func newClient(cfg Config) redis.UniversalClient {
	if cfg.Mode == "cluster" {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.Addrs,
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			MaxRetries:   -1,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		})
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addrs[0],
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   -1,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// Client returns nil for an unknown name
func (m *Manager) Client(name string) redis.UniversalClient {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clients[name]
}

// InstanceNames sorted
func (m *Manager) InstanceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.clients))
	for name := range m.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ping checks all instances
func (m *Manager) Ping(ctx context.Context) error {
	for _, name := range m.InstanceNames() {
		if err := m.Client(name).Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping %s failed: %w", name, err)
		}
	}
	return nil
}

// Close closes every client and returns the first error
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, c := range m.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s failed: %w", name, err)
		}
	}
	if len(m.clients) > 0 {
		m.logger.Info("Redis connections closed", zap.Int("count", len(m.clients)))
	}
	m.clients = make(map[string]redis.UniversalClient)
	return firstErr
}

// Shutdown implements do.ShutdownerWithError
func (m *Manager) Shutdown() error {
	return m.Close()
}
