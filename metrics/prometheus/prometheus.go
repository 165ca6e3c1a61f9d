package prometheusmetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines the Prometheus metrics backing the Engine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	vastRequests       *prometheus.CounterVec
	buildTimer         prometheus.Histogram
	validationFailures *prometheus.CounterVec
	connectionsOpened  prometheus.Counter
	connectionsClosed  prometheus.Counter
}

// NewMetrics initializes a new Prometheus metrics instance with its own
// registry.
func NewMetrics(namespace, subsystem string) *Metrics {
	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.vastRequests = newCounterVec(metrics.Registry, namespace, subsystem,
		"vast_requests_total",
		"Count of VAST requests by platform and HTTP status.",
		[]string{"platform", "status"})

	metrics.buildTimer = newHistogram(metrics.Registry, namespace, subsystem,
		"vast_build_seconds",
		"Seconds spent building one VAST document.",
		[]float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1})

	metrics.validationFailures = newCounterVec(metrics.Registry, namespace, subsystem,
		"vast_validation_failures_total",
		"Count of built documents that failed validation, by platform.",
		[]string{"platform"})

	metrics.connectionsOpened = newCounter(metrics.Registry, namespace, subsystem,
		"connections_opened_total",
		"Count of accepted server connections.")

	metrics.connectionsClosed = newCounter(metrics.Registry, namespace, subsystem,
		"connections_closed_total",
		"Count of closed server connections.")

	return &metrics
}

func (m *Metrics) RecordVastRequest(platformID string, statusCode int) {
	m.vastRequests.With(prometheus.Labels{
		"platform": platformID,
		"status":   strconv.Itoa(statusCode),
	}).Inc()
}

func (m *Metrics) RecordBuildTime(duration time.Duration) {
	m.buildTimer.Observe(duration.Seconds())
}

func (m *Metrics) RecordValidationFailure(platformID string) {
	m.validationFailures.With(prometheus.Labels{"platform": platformID}).Inc()
}

func (m *Metrics) RecordNewConnection() {
	m.connectionsOpened.Inc()
}

func (m *Metrics) RecordClosedConnection() {
	m.connectionsClosed.Inc()
}

func newCounter(registry *prometheus.Registry, namespace, subsystem, name, help string) prometheus.Counter {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
	registry.MustRegister(counter)
	return counter
}

func newCounterVec(registry *prometheus.Registry, namespace, subsystem, name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	registry.MustRegister(counter)
	return counter
}

func newHistogram(registry *prometheus.Registry, namespace, subsystem, name, help string, buckets []float64) prometheus.Histogram {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	registry.MustRegister(histogram)
	return histogram
}
