// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/registhor/internal/cache"
	"github.com/tomtom215/registhor/internal/models"
)

// CacheHeader reports whether a lookup was served from the response cache.
const CacheHeader = "X-Cache"

// builder produces the results of a cacheable lookup.
type builder func(ctx context.Context) (interface{}, error)

// serveCached answers a lookup from the response cache, building and storing
// the encoded envelope on a miss. Concurrent misses on one key share a
// single build. Errors are never cached.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, route string, params map[string]string, build builder) {
	if h.cache == nil {
		results, err := build(r.Context())
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		respondOK(w, results)
		return
	}

	// The backend counts hits, misses and errors itself.
	key := cache.GenerateKey(route, params)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set(CacheHeader, "HIT")
		writeBody(w, http.StatusOK, body)
		return
	}

	// The shared build outlives any single caller's cancellation; the store
	// applies its own query timeout.
	ctx := context.WithoutCancel(r.Context())
	v, err, _ := h.flight.Do(key, func() (interface{}, error) {
		results, err := build(ctx)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(models.OK(results))
		if err != nil {
			return nil, err
		}
		h.cache.Set(ctx, key, body)
		return body, nil
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.Header().Set(CacheHeader, "MISS")
	writeBody(w, http.StatusOK, v.([]byte))
}
