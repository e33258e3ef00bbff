package health

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// Monitor 按固定间隔在后台执行检查，保存最近一次结果
// /health 读取缓存结果，避免每个探针请求都打到后端
type Monitor struct {
	aggregator *Aggregator
	interval   time.Duration
	scheduler  gocron.Scheduler
	logger     *logger.CtxZapLogger

	mu         sync.RWMutex
	last       *Response
	lastStatus Status
}

func NewMonitor(aggregator *Aggregator, interval time.Duration, log *logger.CtxZapLogger) (*Monitor, error) {
	if log == nil {
		log = logger.GetLogger("health")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	m := &Monitor{
		aggregator: aggregator,
		interval:   interval,
		scheduler:  scheduler,
		logger:     log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(m.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return m, nil
}

// Start 启动后台巡检
func (m *Monitor) Start() {
	m.scheduler.Start()
}

// Stop 停止巡检，等待正在执行的检查结束
func (m *Monitor) Stop() error {
	return m.scheduler.Shutdown()
}

// Check 返回最近一次结果；还没有结果时实时检查一次
func (m *Monitor) Check(ctx context.Context) *Response {
	m.mu.RLock()
	last := m.last
	m.mu.RUnlock()
	if last != nil {
		return last
	}
	return m.aggregator.Check(ctx)
}

func (m *Monitor) refresh() {
	resp := m.aggregator.Check(context.Background())

	m.mu.Lock()
	prev := m.lastStatus
	m.last = resp
	m.lastStatus = resp.Status
	m.mu.Unlock()

	if prev != resp.Status {
		fields := []zap.Field{zap.String("from", string(prev)), zap.String("to", string(resp.Status))}
		for name, r := range resp.Checks {
			if r.Error != "" {
				fields = append(fields, zap.String(name, r.Error))
			}
		}
		if resp.Status == StatusHealthy {
			m.logger.Info("health status changed", fields...)
		} else {
			m.logger.Warn("health status changed", fields...)
		}
	}
}
