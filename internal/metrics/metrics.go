// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics
var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registhor_db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_db_query_errors_total",
			Help: "Total number of failed store queries",
		},
		[]string{"driver", "operation"},
	)

	DBOpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registhor_db_open_connections",
			Help: "Open connections in the store pool",
		},
	)

	DBUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registhor_db_up",
			Help: "1 when the last store ping succeeded, 0 otherwise",
		},
	)
)

// Circuit breaker metrics
var (
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registhor_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_circuit_breaker_requests_total",
			Help: "Requests passing through a circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// HTTP metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registhor_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registhor_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	AuthRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_auth_rejections_total",
			Help: "Requests rejected by the API key check",
		},
		[]string{"reason"}, // missing, invalid, throttled
	)
)

// Cache and clustering metrics
var (
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_cache_requests_total",
			Help: "Response cache lookups by result",
		},
		[]string{"backend", "result"}, // hit, miss, error
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registhor_cache_entries",
			Help: "Entries held by the in-memory response cache",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registhor_cache_evictions_total",
			Help: "In-memory cache entries dropped by expiry or Clear",
		},
	)

	ClusterInputRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_cluster_input_records_total",
			Help: "Location records passed to the clustering aggregator",
		},
		[]string{"source"},
	)

	ClusterOutputRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registhor_cluster_output_records_total",
			Help: "Map markers produced by the clustering aggregator",
		},
		[]string{"source"},
	)
)

// RecordDBQuery records the duration and outcome of one store query.
func RecordDBQuery(driver, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// RecordStoreProbe records the outcome of one store monitor ping.
func RecordStoreProbe(up bool, openConns int) {
	if up {
		DBUp.Set(1)
	} else {
		DBUp.Set(0)
	}
	DBOpenConnections.Set(float64(openConns))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthRejection counts a request denied by the key check.
func RecordAuthRejection(reason string) {
	AuthRejections.WithLabelValues(reason).Inc()
}

// RecordCacheLookup counts a cache hit, miss or backend error.
func RecordCacheLookup(backend, result string) {
	CacheRequests.WithLabelValues(backend, result).Inc()
}

// RecordCacheSize publishes the in-memory cache size after a change and
// counts the entries it dropped.
func RecordCacheSize(entries, evicted int) {
	CacheEntries.Set(float64(entries))
	if evicted > 0 {
		CacheEvictions.Add(float64(evicted))
	}
}

// RecordClustering records how many records went into and came out of one
// clustering pass.
func RecordClustering(source string, in, out int) {
	ClusterInputRecords.WithLabelValues(source).Add(float64(in))
	ClusterOutputRecords.WithLabelValues(source).Add(float64(out))
}
