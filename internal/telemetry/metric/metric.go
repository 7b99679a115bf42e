// Package metric provides Prometheus metrics for the estate service.
//
// It exposes session lifecycle counts, gate decisions, and HTTP request
// latencies in Prometheus format on the /metrics endpoint.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics backed by a private Prometheus
// registry, so tests can instantiate isolated registries per test case.
type Registry struct {
	reg *prometheus.Registry

	// LoginsTotal counts login attempts by result (success, failure).
	LoginsTotal *prometheus.CounterVec

	// SessionsActive tracks the number of live sessions in the registry.
	SessionsActive prometheus.Gauge

	// SessionsExpired counts sessions evicted after their TTL elapsed.
	SessionsExpired prometheus.Counter

	// GateRejections counts gate rejections by reason.
	GateRejections *prometheus.CounterVec

	// RequestDuration observes HTTP request latency by method and status.
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with all collectors
// registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "estate",
			Name:      "sessions_active",
			Help:      "Number of live sessions in the registry.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "sessions_expired_total",
			Help:      "Sessions evicted after TTL expiry.",
		}),
		GateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "gate_rejections_total",
			Help:      "Auth gate rejections by reason.",
		}, []string{"reason"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "estate",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		r.LoginsTotal,
		r.SessionsActive,
		r.SessionsExpired,
		r.GateRejections,
		r.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
