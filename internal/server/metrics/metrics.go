// Package metrics holds the Prometheus instruments of the account server.
// Everything is registered on a private registry so tests and multiple
// servers in one process never collide on the global default.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names used as the "operation" label.
const (
	OpRegister  = "register"
	OpLogin     = "login"
	OpIdentify  = "identify"
	OpListUsers = "list_users"
)

// Outcome names used as the "outcome" label.
const (
	OutcomeSuccess       = "success"
	OutcomeAlreadyExists = "already_exists"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeError         = "error"
)

type Metrics struct {
	registry     *prometheus.Registry
	authOps      *prometheus.CounterVec
	hashSeconds  prometheus.Histogram
	httpRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		authOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Account operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		hashSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auth_password_hash_seconds",
			Help:    "Time spent hashing or verifying passwords.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authOps,
		m.hashSeconds,
		m.httpRequests,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// The observe methods are no-ops on a nil *Metrics.

func (m *Metrics) ObserveAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.authOps.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveHash(d time.Duration) {
	if m == nil {
		return
	}
	m.hashSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
