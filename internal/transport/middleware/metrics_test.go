package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/moheuddin/itms/internal/metrics"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sections", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET /api/sections", http.MethodGet, "2xx")
	before := testutil.ToFloat64(counter)

	Metrics()(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/sections?category=ITA", nil))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
}

func TestMetrics_Unmatched(t *testing.T) {
	mux := http.NewServeMux()

	counter := metrics.HTTPRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "4xx")
	before := testutil.ToFloat64(counter)

	Metrics()(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
}
