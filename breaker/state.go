package breaker

import (
	"sync"
	"time"
)

// State 熔断状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// transition is one state change
type transition struct {
	from, to State
}

func (t transition) changed() bool { return t.from != t.to }

// stateMachine tracks one resource. Safe for concurrent use.
// gen increments on every state change; a result only counts in the generation it was admitted in.
type stateMachine struct {
	mu        sync.Mutex
	state     State
	gen       uint64
	since     time.Time
	failures  int
	successes int
	inFlight  int
}

func newStateMachine(now time.Time) *stateMachine {
	return &stateMachine{state: StateClosed, since: now}
}

func (m *stateMachine) current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// allow moves Open to HalfOpen after the timeout and admits at most HalfOpenRequests trial calls.
// It returns the generation the call was admitted in.
func (m *stateMachine) allow(cfg Config, now time.Time) (bool, uint64, transition) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := transition{from: m.state, to: m.state}
	switch m.state {
	case StateClosed:
		return true, m.gen, t
	case StateOpen:
		if now.Sub(m.since) < cfg.OpenTimeout {
			return false, m.gen, t
		}
		m.moveTo(StateHalfOpen, now)
		t.to = StateHalfOpen
		fallthrough
	case StateHalfOpen:
		if m.inFlight >= cfg.HalfOpenRequests {
			return false, m.gen, t
		}
		m.inFlight++
		return true, m.gen, t
	}
	return false, m.gen, t
}

// release gives back a half-open slot without counting an outcome
func (m *stateMachine) release(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen && m.state == StateHalfOpen && m.inFlight > 0 {
		m.inFlight--
	}
}

// onSuccess ignores stale generations
func (m *stateMachine) onSuccess(cfg Config, gen uint64, now time.Time) transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := transition{from: m.state, to: m.state}
	if gen != m.gen {
		return t
	}
	switch m.state {
	case StateClosed:
		m.failures = 0
	case StateHalfOpen:
		m.successes++
		if m.successes >= cfg.HalfOpenRequests {
			m.moveTo(StateClosed, now)
		}
	}
	t.to = m.state
	return t
}

func (m *stateMachine) onFailure(cfg Config, gen uint64, now time.Time) transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := transition{from: m.state, to: m.state}
	if gen != m.gen {
		return t
	}
	switch m.state {
	case StateClosed:
		m.failures++
		if m.failures >= cfg.ConsecutiveFailures {
			m.moveTo(StateOpen, now)
		}
	case StateHalfOpen:
		// 试探失败，重新计时
		m.moveTo(StateOpen, now)
	}
	t.to = m.state
	return t
}

func (m *stateMachine) reset(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveTo(StateClosed, now)
}

// moveTo requires m.mu held
func (m *stateMachine) moveTo(s State, now time.Time) {
	m.state = s
	m.gen++
	m.since = now
	m.failures = 0
	m.successes = 0
	m.inFlight = 0
}
