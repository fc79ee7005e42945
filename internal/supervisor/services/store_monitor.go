// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/metrics"
)

// StoreProber is the part of *database.DB the monitor needs.
type StoreProber interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
	Driver() string
	BreakerState() string
}

// StoreMonitorService pings the store on a fixed interval, publishes the
// result as metrics and logs every up/down transition.
//
// Example usage:
//
//	svc := services.NewStoreMonitorService(db, cfg.Database.HealthInterval)
//	tree.AddDataService(svc)
type StoreMonitorService struct {
	store    StoreProber
	interval time.Duration
	timeout  time.Duration
	name     string

	// up is the state seen by the previous probe. Only the Serve goroutine
	// touches it.
	up bool
}

// NewStoreMonitorService creates a monitor for store. Non-positive
// intervals fall back to 30s.
func NewStoreMonitorService(store StoreProber, interval time.Duration) *StoreMonitorService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		timeout:  timeout,
		name:     "store-monitor",
		up:       true,
	}
}

// Serve implements suture.Service. It probes once immediately, then on
// every tick until ctx is canceled. A failing store never ends Serve; the
// monitor's job is to report, not to restart.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	s.probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe runs one ping and reports whether the store answered.
func (s *StoreMonitorService) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.store.Ping(pingCtx)
	cancel()

	up := err == nil
	stats := s.store.Stats()
	metrics.RecordStoreProbe(up, stats.OpenConnections)

	switch {
	case !up && s.up:
		logging.Error().
			Err(err).
			Str("driver", s.store.Driver()).
			Str("breaker", s.store.BreakerState()).
			Msg("Store stopped answering pings")
	case up && !s.up:
		logging.Info().
			Str("driver", s.store.Driver()).
			Int("open_connections", stats.OpenConnections).
			Msg("Store is reachable again")
	case !up:
		logging.Debug().Err(err).Msg("Store still unreachable")
	}
	s.up = up
	return up
}

// String implements fmt.Stringer for suture's log messages.
func (s *StoreMonitorService) String() string {
	return s.name
}
