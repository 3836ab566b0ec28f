package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMiddlewareRecordsStatus(t *testing.T) {
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics-test-missing", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	got := testutil.ToFloat64(requestsTotal.WithLabelValues("http", "GET /metrics-test-missing", "404"))
	if got != 1 {
		t.Errorf("requests_total: got %v, want 1", got)
	}
}

func TestHTTPMiddlewareReusesWrappedWriter(t *testing.T) {
	var sawWrapped bool
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawWrapped = w.(chimw.WrapResponseWriter)
		w.WriteHeader(http.StatusCreated)
	}))

	// Simulate an outer middleware that already wrapped the writer.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/metrics-test-wrapped", nil)
	outer := chimw.NewWrapResponseWriter(rr, req.ProtoMajor)

	h.ServeHTTP(outer, req)

	if !sawWrapped {
		t.Error("expected the handler to receive the outer recorder")
	}
	if outer.Status() != http.StatusCreated {
		t.Errorf("outer recorder status: got %d, want 201", outer.Status())
	}
	got := testutil.ToFloat64(requestsTotal.WithLabelValues("http", "POST /metrics-test-wrapped", "201"))
	if got != 1 {
		t.Errorf("requests_total: got %v, want 1", got)
	}
}
