package middleware

import (
	"net/http"
	"time"

	"leadform/pkg/metrics"
)

// RequestMetrics records request counts and latency. Paths outside the known
// API and probe routes are folded into one "other" label.
func RequestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(r.Method, routeLabel(r.URL.Path), wrapped.statusCode, time.Since(start).Seconds())
		})
	}
}

var knownRoutes = map[string]struct{}{
	"/api/lead":      {},
	"/api/lead/ping": {},
	"/health":        {},
	"/ready":         {},
	"/metrics":       {},
	"/whoami":        {},
}

func routeLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}
