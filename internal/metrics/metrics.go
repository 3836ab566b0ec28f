// Package metrics defines the Prometheus instrumentation for both
// transport bindings.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"connectrpc.com/connect"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Name:      "requests_total",
			Help:      "Total requests handled, by transport, operation, and result code.",
		},
		[]string{"transport", "operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "community",
			Name:      "request_duration_seconds",
			Help:      "Request handling latency, by transport and operation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"transport", "operation"},
	)
)

// Handler returns the /metrics exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMiddleware records counts and latency for REST requests.
// The operation label is "METHOD /path" using the raw request path.
// If an outer middleware already wrapped the writer with chi's
// WrapResponseWriter, that recorder is reused rather than wrapped again.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec, ok := w.(chimw.WrapResponseWriter)
		if !ok {
			rec = chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		next.ServeHTTP(rec, r)

		operation := r.Method + " " + r.URL.Path
		requestsTotal.WithLabelValues("http", operation, strconv.Itoa(rec.Status())).Inc()
		requestDuration.WithLabelValues("http", operation).Observe(time.Since(start).Seconds())
	})
}

// Interceptor records counts and latency for Connect RPC calls.
func Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			requestsTotal.WithLabelValues("rpc", procedure, code).Inc()
			requestDuration.WithLabelValues("rpc", procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
