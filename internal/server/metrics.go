package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the server's Prometheus collectors. Per-round isolation
// metrics live in the roots package and are served by the same handler.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polyroots_active_requests",
		Help: "Current number of active requests",
	})
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyroots_requests_total",
		Help: "Total number of requests received",
	})
	isolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polyroots_isolations_total",
		Help: "Isolation requests by HTTP status code",
	}, []string{"code"})
)

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

// IncrementActiveRequests increments the active requests gauge
// and the total requests counter.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
	totalRequests.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// RecordIsolation counts a finished /roots request by status code.
func (m *Metrics) RecordIsolation(status int) {
	isolationsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// WritePrometheus writes metrics in Prometheus text format to the HTTP response.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks active requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}
