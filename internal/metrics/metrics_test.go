// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordDBQuery_CountsErrors(t *testing.T) {
	errs := DBQueryErrors.WithLabelValues("duckdb", "test_select")
	before := counterValue(t, errs)

	RecordDBQuery("duckdb", "test_select", 5*time.Millisecond, nil)
	RecordDBQuery("duckdb", "test_select", 5*time.Millisecond, errors.New("boom"))

	if got := counterValue(t, errs) - before; got != 1 {
		t.Errorf("error counter delta = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/test/route", "200")
	before := counterValue(t, c)

	RecordAPIRequest("GET", "/test/route", "200", 10*time.Millisecond)
	RecordAPIRequest("GET", "/test/route", "200", 10*time.Millisecond)

	if got := counterValue(t, c) - before; got != 2 {
		t.Errorf("request counter delta = %v, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := gaugeValue(t, APIActiveRequests)

	TrackActiveRequest(true)
	if got := gaugeValue(t, APIActiveRequests) - before; got != 1 {
		t.Errorf("active delta after inc = %v, want 1", got)
	}
	TrackActiveRequest(false)
	if got := gaugeValue(t, APIActiveRequests) - before; got != 0 {
		t.Errorf("active delta after dec = %v, want 0", got)
	}
}

func TestRecordClustering(t *testing.T) {
	in := ClusterInputRecords.WithLabelValues("test_source")
	out := ClusterOutputRecords.WithLabelValues("test_source")
	inBefore, outBefore := counterValue(t, in), counterValue(t, out)

	RecordClustering("test_source", 12, 5)

	if got := counterValue(t, in) - inBefore; got != 12 {
		t.Errorf("input delta = %v, want 12", got)
	}
	if got := counterValue(t, out) - outBefore; got != 5 {
		t.Errorf("output delta = %v, want 5", got)
	}
}

func TestRecordCacheLookupAndAuthRejection(t *testing.T) {
	hits := CacheRequests.WithLabelValues("memory", "hit")
	denied := AuthRejections.WithLabelValues("invalid")
	hBefore, dBefore := counterValue(t, hits), counterValue(t, denied)

	RecordCacheLookup("memory", "hit")
	RecordAuthRejection("invalid")

	if counterValue(t, hits)-hBefore != 1 || counterValue(t, denied)-dBefore != 1 {
		t.Error("expected cache hit and auth rejection counters to increase by one")
	}
}

func TestRecordStoreProbe(t *testing.T) {
	RecordStoreProbe(true, 3)
	if got := gaugeValue(t, DBUp); got != 1 {
		t.Errorf("db up = %v, want 1", got)
	}
	if got := gaugeValue(t, DBOpenConnections); got != 3 {
		t.Errorf("open connections = %v, want 3", got)
	}

	RecordStoreProbe(false, 0)
	if got := gaugeValue(t, DBUp); got != 0 {
		t.Errorf("db up = %v, want 0", got)
	}
}
