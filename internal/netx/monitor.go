// Package netx tracks whether the remote catalog API is reachable.
package netx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/logging"
)

const defaultProbeTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes a Pinger periodically and caches the last answer. The zero
// state is offline until the first probe completes.
type Monitor struct {
	pinger       Pinger
	interval     time.Duration
	probeTimeout time.Duration
	logger       logging.Logger

	online atomic.Bool

	mu        sync.Mutex
	listeners []func(online bool)
}

func NewMonitor(p Pinger, interval time.Duration, logger logging.Logger) *Monitor {
	return &Monitor{
		pinger:       p,
		interval:     interval,
		probeTimeout: defaultProbeTimeout,
		logger:       logger,
	}
}

// Online reports the result of the most recent probe.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// OnChange registers fn to be called after every online/offline transition.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Check probes once and returns the new state.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	err := m.pinger.Ping(ctx)
	cancel()

	now := err == nil
	if prev := m.online.Swap(now); prev != now {
		if now {
			m.logger.Info(ctx, "server reachable")
		} else {
			m.logger.Warn(ctx, "server unreachable", "error", err)
		}
		m.notify(now)
	}
	return now
}

// Run checks immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	if m.interval <= 0 {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) notify(online bool) {
	m.mu.Lock()
	ls := append([]func(bool){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range ls {
		fn(online)
	}
}
