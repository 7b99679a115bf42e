// Package service provides domain services for the estate site.
package service

import (
	"context"
	"time"

	"github.com/nainaland/estate-go/internal/telemetry/logger"
	"github.com/nainaland/estate-go/internal/telemetry/metric"
)

// DefaultSweepInterval is how often the background sweeper evicts
// expired sessions when no interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// SessionSweeper periodically evicts expired sessions from the registry.
//
// Expiry is already enforced lazily at lookup time; the sweeper is an
// optimization that reclaims memory for sessions nobody presents again.
type SessionSweeper struct {
	sessions SessionRegistry
	metrics  *metric.Registry
	interval time.Duration
	log      logger.Logger
}

// NewSessionSweeper creates a sweeper over the given registry.
func NewSessionSweeper(sessions SessionRegistry, metrics *metric.Registry, interval time.Duration, log logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = logger.Default()
	}
	return &SessionSweeper{
		sessions: sessions,
		metrics:  metrics,
		interval: interval,
		log:      log,
	}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	evicted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Warn("session sweep failed", "error", err)
		return
	}

	if s.metrics != nil {
		s.metrics.SessionsExpired.Add(float64(evicted))
		s.metrics.SessionsActive.Set(float64(s.sessions.Count()))
	}

	if evicted > 0 {
		s.log.Debug("evicted expired sessions", "count", evicted)
	}
}
