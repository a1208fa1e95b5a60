package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLead(OutcomeCreated)
	m.ObserveLead(OutcomeCreated)
	m.ObserveLead(OutcomeDuplicate)
	m.ObserveRequest(http.MethodPost, "/api/lead", http.StatusSeeOther, 0.02)
	m.ObserveUpstream("create", "200", 0.1)
	m.ObservePublish("leads.created", errors.New("broker down"), 0.3)

	if got := testutil.ToFloat64(m.leadsTotal.WithLabelValues(OutcomeCreated)); got != 2 {
		t.Errorf("expected 2 created leads, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodPost, "/api/lead", "303")); got != 1 {
		t.Errorf("expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(m.eventsPublished.WithLabelValues("leads.created", "error")); got != 1 {
		t.Errorf("expected 1 failed publish, got %v", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveLead(OutcomeInvalid)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `leadform_leads_submissions_total{outcome="invalid"} 1`) {
		t.Errorf("expected lead counter in exposition, got:\n%s", w.Body.String())
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLead(OutcomeCreated)
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, 0.1)
	m.ObserveUpstream("query", "error", 0.1)
	m.ObservePublish("topic", nil, 0.1)
	if m.Handler() == nil {
		t.Error("expected a fallback handler")
	}
}
