// Package health keeps a cached view of storage backend health.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is implemented by backends that can verify connectivity. Ping must
// return nil when the backend is healthy.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// Monitor periodically pings a backend and caches the result. Transitions
// are logged once, not on every probe.
type Monitor struct {
	name    string
	pinger  Pinger
	timeout time.Duration
	log     zerolog.Logger
	healthy atomic.Bool
}

func NewMonitor(name string, p Pinger, timeout time.Duration, log zerolog.Logger) *Monitor {
	m := &Monitor{name: name, pinger: p, timeout: timeout, log: log}
	m.healthy.Store(true)
	return m
}

// IsHealthy returns the cached probe result.
func (m *Monitor) IsHealthy() bool { return m.healthy.Load() }

// Start probes immediately, then on every tick until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.HealthPing(probeCtx)
	was := m.healthy.Swap(err == nil)
	switch {
	case err != nil && was:
		m.log.Error().Err(err).Str("component", m.name).Msg("health: DOWN")
	case err == nil && !was:
		m.log.Info().Str("component", m.name).Msg("health: UP")
	}
}
