// Package metrics holds the Prometheus collectors of the programs admin.
//
// HTTP metrics are labelled by the gin route template (c.FullPath()), never by the raw URL,
// so program and view ids do not inflate label cardinality.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for view events
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomePersistErr = "persistence_error"
	OutcomeError      = "error"
)

// Metrics owns a registry and the collectors registered on it
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ViewEventsTotal     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed, by method, route template, and status code.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, by method and route template.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ViewEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "program_view_events_total",
				Help: "Program details page events, by event type and outcome.",
			},
			[]string{"type", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ViewEventsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterGauge exposes a value sampled at scrape time, such as the number of open view
// sessions.
func (m *Metrics) RegisterGauge(name, help string, sample func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, sample))
}

// ObserveViewEvent counts one handled view event
func (m *Metrics) ObserveViewEvent(eventType, outcome string) {
	m.ViewEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
