// Package metrics exposes Prometheus collectors for the HTTP surface and the store.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "academy"

// Metrics owns a private registry so tests can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	storeUp  prometheus.Gauge
	leads    *prometheus.CounterVec
}

// New registers the service collectors plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_available",
			Help:      "1 when the backing store answers pings, 0 otherwise.",
		}),
		leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_received_total",
			Help:      "Lead events delivered to the follow-up worker by source.",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.storeUp,
		m.leads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetStoreAvailable mirrors the availability flag.
func (m *Metrics) SetStoreAvailable(available bool) {
	if available {
		m.storeUp.Set(1)

		return
	}
	m.storeUp.Set(0)
}

// ObserveLead counts one lead event picked up by the worker.
func (m *Metrics) ObserveLead(source string) {
	m.leads.WithLabelValues(source).Inc()
}

// RegisterDBStats exports the connection pool statistics of the relational store.
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
