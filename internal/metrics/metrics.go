// Package metrics exposes prometheus instrumentation for persistence, the
// HTTP API and the analysis client. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the journal records into.
type Metrics struct {
	StoreReadFailures  *prometheus.CounterVec
	StoreWriteFailures *prometheus.CounterVec
	StoreSeeds         *prometheus.CounterVec
	StoreWrites        *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	AnalyzeRequests *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreReadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "store",
			Name:      "read_failures_total",
			Help:      "Collection reads that failed and fell back to seed data.",
		}, []string{"collection"}),
		StoreWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "store",
			Name:      "write_failures_total",
			Help:      "Collection writes that failed and were not retried.",
		}, []string{"collection"}),
		StoreSeeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "store",
			Name:      "seeds_total",
			Help:      "First-run seed datasets served from an empty store.",
		}, []string{"collection"}),
		StoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Whole-collection writes that succeeded.",
		}, []string{"collection"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cooknote",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AnalyzeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cooknote",
			Subsystem: "analyzer",
			Name:      "requests_total",
			Help:      "Image analysis calls by outcome.",
		}, []string{"outcome"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.StoreReadFailures,
			m.StoreWriteFailures,
			m.StoreSeeds,
			m.StoreWrites,
			m.HTTPRequests,
			m.HTTPDuration,
			m.AnalyzeRequests,
		)
	}
	return m
}

// ReadFailed records a degraded collection read.
func (m *Metrics) ReadFailed(collection string) {
	if m == nil {
		return
	}
	m.StoreReadFailures.WithLabelValues(collection).Inc()
}

// WriteFailed records a dropped collection write.
func (m *Metrics) WriteFailed(collection string) {
	if m == nil {
		return
	}
	m.StoreWriteFailures.WithLabelValues(collection).Inc()
}

// Wrote records a successful collection write.
func (m *Metrics) Wrote(collection string) {
	if m == nil {
		return
	}
	m.StoreWrites.WithLabelValues(collection).Inc()
}

// Seeded records that a collection was served from seed data.
func (m *Metrics) Seeded(collection string) {
	if m == nil {
		return
	}
	m.StoreSeeds.WithLabelValues(collection).Inc()
}

// Analyzed records an analysis call outcome ("ok", "network", "http", "malformed", ...).
func (m *Metrics) Analyzed(outcome string) {
	if m == nil {
		return
	}
	m.AnalyzeRequests.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one completed request against its route pattern.
func (m *Metrics) ObserveHTTP(method, route string, code int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
