package flightmonitor

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

func TestMetrics_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	m := NewMonitor(1, nil, metrics)

	m.OnUpdate(tracking.Update{ID: "A", Score: 10})
	m.OnUpdate(tracking.Update{ID: "B", Score: 5})
	m.OnUpdate(tracking.Update{ID: "A", Score: 10})
	m.OnUpdate(tracking.Update{Score: 1})

	if got := testutil.ToFloat64(metrics.Updates.WithLabelValues("created")); got != 2 {
		t.Errorf("created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.Updates.WithLabelValues("updated")); got != 1 {
		t.Errorf("updated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.Updates.WithLabelValues("dropped")); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RankRejections); got != 1 {
		t.Errorf("rank rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.TrackedFlights); got != 2 {
		t.Errorf("tracked = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.LeaderboardSize); got != 1 {
		t.Errorf("leaderboard size = %v, want 1", got)
	}

	m.Reset()
	if got := testutil.ToFloat64(metrics.TrackedFlights); got != 0 {
		t.Errorf("tracked after reset = %v, want 0", got)
	}
}

func TestMetrics_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("first NewMetrics: %v", err)
	}
	second, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second NewMetrics: %v", err)
	}
	first.DecodeError()
	if got := testutil.ToFloat64(second.DecodeErrors); got != 1 {
		t.Errorf("decode errors = %v, want 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	metrics.DecodeError()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "flightmon_decode_errors_total 1") {
		t.Fatalf("metrics output missing counter:\n%s", rec.Body.String())
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var metrics *Metrics
	metrics.DecodeError()
	metrics.observeUpdate(Outcome{Created: true})
	metrics.observeSizes(1, 1)
}
