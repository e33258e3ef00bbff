// Package breaker is a per-resource consecutive-failure circuit breaker.
//
// While a backend keeps failing, calls fail fast instead of each waiting for a timeout.
// A nil *Breaker is usable and behaves as disabled.
package breaker

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/logger"
)

// Breaker 熔断器
type Breaker struct {
	cfg    Config
	logger *logger.CtxZapLogger
	now    func() time.Time

	mu        sync.RWMutex
	resources map[string]*stateMachine

	transitions metric.Int64Counter
	rejections  metric.Int64Counter
}

// Option configures a Breaker
type Option func(*Breaker)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) { b.now = now }
}

func New(cfg Config, log *logger.CtxZapLogger, meter metric.Meter, opts ...Option) *Breaker {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetLogger("breaker")
	}
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("breaker")
	}
	b := &Breaker{
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
		resources: make(map[string]*stateMachine),
	}
	for _, opt := range opts {
		opt(b)
	}

	var err error
	if b.transitions, err = meter.Int64Counter("breaker_transitions_total",
		metric.WithDescription("Circuit breaker state transitions")); err != nil {
		b.transitions, _ = noop.Meter{}.Int64Counter("breaker_transitions_total")
	}
	if b.rejections, err = meter.Int64Counter("breaker_rejections_total",
		metric.WithDescription("Calls rejected while the circuit is open")); err != nil {
		b.rejections, _ = noop.Meter{}.Int64Counter("breaker_rejections_total")
	}
	return b
}

func (b *Breaker) IsEnabled() bool {
	return b != nil && b.cfg.Enabled
}

func (b *Breaker) machine(resource string) *stateMachine {
	b.mu.RLock()
	m, ok := b.resources[resource]
	b.mu.RUnlock()
	if ok {
		return m
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok = b.resources[resource]; !ok {
		m = newStateMachine(b.now())
		b.resources[resource] = m
	}
	return m
}

// Permit is handed out by Allow and returned through Record or Release
type Permit struct {
	resource string
	gen      uint64
	live     bool
}

// Allow returns a Permit, or ErrOpen when the circuit rejects the call.
// When disabled the Permit is inert and Record/Release ignore it.
func (b *Breaker) Allow(ctx context.Context, resource string) (Permit, error) {
	if !b.IsEnabled() {
		return Permit{resource: resource}, nil
	}
	ok, gen, t := b.machine(resource).allow(b.cfg, b.now())
	b.observe(ctx, resource, t)
	if !ok {
		b.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", resource)))
		return Permit{}, ErrOpen.WithMsgf("circuit open for %s", resource)
	}
	return Permit{resource: resource, gen: gen, live: true}, nil
}

// Record reports the outcome; nil err is a success.
// Results from a permit issued before the last state change are dropped.
func (b *Breaker) Record(ctx context.Context, p Permit, err error) {
	if !b.IsEnabled() || !p.live {
		return
	}
	m := b.machine(p.resource)
	var t transition
	if err == nil {
		t = m.onSuccess(b.cfg, p.gen, b.now())
	} else {
		t = m.onFailure(b.cfg, p.gen, b.now())
	}
	b.observe(ctx, p.resource, t)
}

// Release 调用方自己放弃了请求（ctx 取消或超时），结果不能说明后端状态
func (b *Breaker) Release(p Permit) {
	if !b.IsEnabled() || !p.live {
		return
	}
	b.machine(p.resource).release(p.gen)
}

// Execute runs fn under Allow/Record. If fn fails after ctx ended, the permit is only released.
func (b *Breaker) Execute(ctx context.Context, resource string, fn func(ctx context.Context) error) error {
	p, err := b.Allow(ctx, resource)
	if err != nil {
		return err
	}
	err = fn(ctx)
	if err != nil && ctx.Err() != nil {
		b.Release(p)
		return err
	}
	b.Record(ctx, p, err)
	return err
}

// State is Closed for unseen resources
func (b *Breaker) State(resource string) State {
	if !b.IsEnabled() {
		return StateClosed
	}
	b.mu.RLock()
	m, ok := b.resources[resource]
	b.mu.RUnlock()
	if !ok {
		return StateClosed
	}
	return m.current()
}

// Reset forces the circuit closed
func (b *Breaker) Reset(resource string) {
	if !b.IsEnabled() {
		return
	}
	b.machine(resource).reset(b.now())
}

func (b *Breaker) observe(ctx context.Context, resource string, t transition) {
	if !t.changed() {
		return
	}
	b.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.String("from", t.from.String()),
		attribute.String("to", t.to.String()),
	))
	fields := []zap.Field{
		zap.String("resource", resource),
		zap.String("from", t.from.String()),
		zap.String("to", t.to.String()),
	}
	if t.to == StateOpen {
		b.logger.WarnCtx(ctx, "circuit opened", fields...)
	} else {
		b.logger.InfoCtx(ctx, "circuit state changed", fields...)
	}
}
