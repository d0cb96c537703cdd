package middleware

import (
	"net/http"
	"time"

	"github.com/moheuddin/itms/internal/metrics"
)

// Metrics returns middleware that records request counts and durations per
// route pattern. It must sit directly in front of the ServeMux so the
// matched pattern is visible on the request after serving.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordRequest(route, r.Method, sw.status, time.Since(start))
		})
	}
}
