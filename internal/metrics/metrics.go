// Package metrics owns the Prometheus registry and the collectors the
// service exports on /metrics.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "project_tracker"

var (
	once     sync.Once
	registry *prometheus.Registry

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	ProjectOperationsTotal     *prometheus.CounterVec
	StatusTransitionsTotal     *prometheus.CounterVec
)

// Init builds the registry and collectors once and returns the registry.
func Init() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		HTTPRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		)
		HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		)
		ProjectOperationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "project_operations_total",
				Help:      "Total number of project service operations by outcome",
			},
			[]string{"operation", "outcome"},
		)
		StatusTransitionsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "project_status_transitions_total",
				Help:      "Total number of applied project status transitions",
			},
			[]string{"from", "to"},
		)

		registry.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			ProjectOperationsTotal,
			StatusTransitionsTotal,
		)
	})
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Init(), promhttp.HandlerOpts{})
}

// ObserveOperation counts one project service call.
func ObserveOperation(operation, outcome string) {
	Init()
	ProjectOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveTransition counts one applied status change.
func ObserveTransition(from, to string) {
	Init()
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}
