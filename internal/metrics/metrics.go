// Package metrics exposes Prometheus metrics for backend calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	activeRequests     prometheus.Gauge
	cancellationsTotal prometheus.Counter
	taskPollsTotal     prometheus.Counter
	taskResultsTotal   *prometheus.CounterVec
	wsReconnectsTotal  prometheus.Counter
	registry           *prometheus.Registry
}

// New creates a new Metrics instance on a private registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "folioclient"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of backend requests",
		},
		[]string{"method", "resource", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets: []float64{
				.001, .005, .01, .025, .05,
				.1, .25, .5, 1, 2.5, 5, 10,
			},
		},
		[]string{"method", "resource"},
	)

	m.activeRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of requests currently in flight",
		},
	)

	m.cancellationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Total number of requests abandoned by session cancellation",
		},
	)

	m.taskPollsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_polls_total",
			Help:      "Total number of task status polls",
		},
	)

	m.taskResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_results_total",
			Help:      "Total number of task result fetches by outcome",
		},
		[]string{"outcome"},
	)

	m.wsReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_reconnects_total",
			Help:      "Total number of websocket reconnects after a dropped connection",
		},
	)

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeRequests,
		m.cancellationsTotal,
		m.taskPollsTotal,
		m.taskResultsTotal,
		m.wsReconnectsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest records a completed backend request.
func (m *Metrics) RecordRequest(method, resource string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, resource).Observe(duration.Seconds())
}

// RequestStarted marks a request as in flight. The returned function marks it
// done.
func (m *Metrics) RequestStarted() func() {
	if m == nil {
		return func() {}
	}
	m.activeRequests.Inc()
	return m.activeRequests.Dec
}

// RecordCancellation records a request abandoned by session cancellation.
func (m *Metrics) RecordCancellation() {
	if m == nil {
		return
	}
	m.cancellationsTotal.Inc()
}

// RecordTaskPoll records one task status poll.
func (m *Metrics) RecordTaskPoll() {
	if m == nil {
		return
	}
	m.taskPollsTotal.Inc()
}

// RecordTaskResult records a task result fetch by terminal outcome.
func (m *Metrics) RecordTaskResult(outcome string) {
	if m == nil {
		return
	}
	m.taskResultsTotal.WithLabelValues(outcome).Inc()
}

// RecordWSReconnect records a websocket reconnect after an established
// connection dropped.
func (m *Metrics) RecordWSReconnect() {
	if m == nil {
		return
	}
	m.wsReconnectsTotal.Inc()
}

// Handler returns an HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
