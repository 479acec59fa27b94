package health

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-song-board/internal/resilience"
)

// scriptedPinger returns the scripted errors in order, then nil.
type scriptedPinger struct {
	mu    sync.Mutex
	errs  []error
	calls int
}

func (p *scriptedPinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= len(p.errs) {
		return p.errs[p.calls-1]
	}
	return nil
}

func (p *scriptedPinger) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func newTestMonitor(p Pinger, opts ...Option) *Monitor {
	return NewMonitor(p, append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

func TestMonitor_InitialStatus(t *testing.T) {
	m := newTestMonitor(&scriptedPinger{})

	assert.Equal(t, StatusUnknown, m.Status().Status)
	assert.True(t, m.Status().LastCheck.IsZero())
	assert.Equal(t, DefaultInterval, m.interval)
}

func TestMonitor_CheckTracksFailures(t *testing.T) {
	p := &scriptedPinger{errs: []error{errors.New("no such host"), errors.New("no such host")}}
	m := newTestMonitor(p)
	ctx := context.Background()

	m.Check(ctx)
	m.Check(ctx)
	s := m.Status()
	assert.Equal(t, StatusUnhealthy, s.Status)
	assert.Equal(t, 2, s.ConsecutiveFails)
	assert.Equal(t, "no such host", s.LastError)
	assert.True(t, s.LastHealthy.IsZero())

	m.Check(ctx)
	s = m.Status()
	assert.Equal(t, StatusHealthy, s.Status)
	assert.Zero(t, s.ConsecutiveFails)
	assert.Empty(t, s.LastError)
	assert.Equal(t, s.LastCheck, s.LastHealthy)
}

func TestMonitor_RunChecksImmediatelyAndPeriodically(t *testing.T) {
	p := &scriptedPinger{}
	m := newTestMonitor(p, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	assert.Eventually(t, func() bool { return p.Calls() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, StatusHealthy, m.Status().Status)
}

func TestMonitor_FailuresDoNotStopRun(t *testing.T) {
	p := &scriptedPinger{errs: []error{errors.New("connection terminated"), errors.New("connection terminated")}}
	m := newTestMonitor(p, WithInterval(5*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background()) }()

	assert.Eventually(t, func() bool { return m.Status().Status == StatusHealthy }, time.Second, time.Millisecond)
	m.Stop()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, p.Calls(), 3)
}

func TestMonitor_RunAfterStopDoesNotPing(t *testing.T) {
	p := &scriptedPinger{}
	m := newTestMonitor(p, WithInterval(5*time.Millisecond))

	m.Stop()
	require.NoError(t, m.Run(context.Background()))

	assert.Zero(t, p.Calls())
	assert.Equal(t, StatusUnknown, m.Status().Status)
}

func TestMonitor_RunWithDoneContextDoesNotPing(t *testing.T) {
	p := &scriptedPinger{}
	m := newTestMonitor(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, m.Run(ctx))

	assert.Zero(t, p.Calls())
}

type panickingPinger struct{}

func (panickingPinger) Ping(context.Context) error {
	panic("driver bug")
}

func TestMonitor_GuardedCheckRecordsPanic(t *testing.T) {
	sup := resilience.NewSupervisor(log.New(io.Discard), nil)
	m := newTestMonitor(panickingPinger{}, WithGuard(sup.Guard))

	require.NotPanics(t, func() { m.Check(context.Background()) })

	s := m.Status()
	assert.Equal(t, StatusUnhealthy, s.Status)
	assert.Equal(t, 1, s.ConsecutiveFails)
	assert.Contains(t, s.LastError, "driver bug")
	assert.EqualValues(t, 1, sup.Faults())
}
