// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/models"
)

// healthPingTimeout bounds the store ping behind /health.
const healthPingTimeout = 2 * time.Second

// Health reports store connectivity. It answers 503 when the store does
// not respond so load balancers take the instance out of rotation.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status, database, code, top := "healthy", "connected", http.StatusOK, "success"
	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check: store ping failed")
		status, database, code, top = "degraded", "disconnected", http.StatusServiceUnavailable, "error"
	}

	respondJSON(w, code, models.HealthResponse{
		Status: top,
		Data: models.HealthStatus{
			Status:    status,
			Database:  database,
			Driver:    h.db.Driver(),
			Version:   Version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Breaker:   h.db.BreakerState(),
			CacheType: h.cacheBackend(),
		},
		Metadata: models.Metadata{Timestamp: h.now().UTC()},
	})
}

// HealthLive answers 200 while the process serves requests, regardless of
// dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"alive":          true,
			"uptime_seconds": time.Since(h.startTime).Seconds(),
		},
	})
}
