// Package health pings the store on a fixed period and records the outcome.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the period between liveness checks.
const DefaultInterval = 60 * time.Second

// Check statuses.
const (
	StatusUnknown   = "unknown"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Pinger runs a trivial liveness query.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the outcome of the most recent checks.
type Status struct {
	Status           string    `json:"status"`
	LastCheck        time.Time `json:"lastCheck,omitzero"`
	LastHealthy      time.Time `json:"lastHealthy,omitzero"`
	ConsecutiveFails int       `json:"consecutiveFails"`
	LastError        string    `json:"lastError,omitempty"`
}

// Monitor pings the store every interval. Failures are logged and recorded,
// never returned; the monitor does not reconnect.
type Monitor struct {
	pinger   Pinger
	interval time.Duration
	logger   *log.Logger
	guard    Guard
	now      func() time.Time

	mu     sync.RWMutex
	status Status

	runMu  sync.Mutex // orders Run's start against Stop
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the check period.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger sets the monitor logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// Guard runs fn and returns a panic raised by it as an error.
type Guard func(name string, fn func()) error

// WithGuard runs every check under g.
func WithGuard(g Guard) Option {
	return func(m *Monitor) {
		m.guard = g
	}
}

// NewMonitor creates a Monitor probing pinger.
func NewMonitor(pinger Pinger, opts ...Option) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Monitor{
		pinger:   pinger,
		interval: DefaultInterval,
		logger:   log.Default(),
		now:      time.Now,
		status:   Status{Status: StatusUnknown},
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run checks immediately and then every interval until ctx is done or Stop
// is called. It always returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	m.runMu.Lock()
	if m.ctx.Err() != nil || ctx.Err() != nil {
		m.runMu.Unlock()
		return nil
	}
	m.wg.Add(1)
	m.runMu.Unlock()
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("health monitor started", "interval", m.interval)
	m.Check(ctx)

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			m.logger.Info("health monitor stopped")
			return nil
		case <-m.ctx.Done():
			m.logger.Info("health monitor stopped")
			return nil
		}
	}
}

// Stop ends Run and waits for it to return. A Run that has not started
// yet returns without probing.
func (m *Monitor) Stop() {
	m.runMu.Lock()
	m.cancel()
	m.runMu.Unlock()
	m.wg.Wait()
}

// Check pings the store once and records the result.
func (m *Monitor) Check(ctx context.Context) {
	err := m.ping(ctx)
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.status.LastCheck = now
	if err != nil {
		m.status.Status = StatusUnhealthy
		m.status.ConsecutiveFails++
		m.status.LastError = err.Error()
		m.logger.Error("store liveness check failed", "fails", m.status.ConsecutiveFails, "err", err)
		return
	}
	if m.status.Status == StatusUnhealthy {
		m.logger.Info("store liveness restored", "after", m.status.ConsecutiveFails)
	}
	m.status.Status = StatusHealthy
	m.status.LastHealthy = now
	m.status.ConsecutiveFails = 0
	m.status.LastError = ""
}

func (m *Monitor) ping(ctx context.Context) (err error) {
	if m.guard == nil {
		return m.pinger.Ping(ctx)
	}
	if perr := m.guard("health-check", func() { err = m.pinger.Ping(ctx) }); perr != nil {
		return perr
	}
	return err
}

// Status returns a snapshot of the latest check outcome.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
