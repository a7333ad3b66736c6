package middleware

import (
	"net/http"
	"sync/atomic"
)

// Metrics counts requests as they pass through the router.
type Metrics struct {
	requests atomic.Int64
	errors   atomic.Int64
	inFlight atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests int64 `json:"request_count"`
	Errors   int64 `json:"error_count"`
	InFlight int64 `json:"in_flight"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests: m.requests.Load(),
		Errors:   m.errors.Load(),
		InFlight: m.inFlight.Load(),
	}
}

// Middleware counts every request, and every 4xx or 5xx response as an error.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		m.inFlight.Add(1)
		defer m.inFlight.Add(-1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		if rw.statusCode >= 400 {
			m.errors.Add(1)
		}
	})
}
