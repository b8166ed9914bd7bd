// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arty_backend"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Webhook intake metrics
	WebhooksReceived   *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	EventsStored       *prometheus.GaugeVec

	// Hook dispatch metrics
	HooksDispatched *prometheus.CounterVec

	// Admin metrics
	EventsCleared prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Webhook intake metrics
		WebhooksReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhooks_received_total",
			Help:      "Total number of webhook payloads accepted",
		}, []string{"kind"}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of webhook payloads rejected by validation",
		}, []string{"kind", "field"}),
		EventsStored: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_stored",
			Help:      "Number of events currently held in the in-memory store",
		}, []string{"kind"}),

		// Hook dispatch metrics
		HooksDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hooks_dispatched_total",
			Help:      "Total number of status hooks dispatched",
		}, []string{"status"}),

		// Admin metrics
		EventsCleared: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_cleared_total",
			Help:      "Total number of events removed by clear operations",
		}),

		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordWebhookReceived records an accepted webhook payload.
func (m *Metrics) RecordWebhookReceived(kind string) {
	m.WebhooksReceived.WithLabelValues(kind).Inc()
}

// RecordValidationFailure records a rejected webhook payload.
func (m *Metrics) RecordValidationFailure(kind, field string) {
	m.ValidationFailures.WithLabelValues(kind, field).Inc()
}

// SetEventsStored records the current size of one store sequence.
func (m *Metrics) SetEventsStored(kind string, count int) {
	m.EventsStored.WithLabelValues(kind).Set(float64(count))
}

// RecordHookDispatched records a status hook dispatch.
func (m *Metrics) RecordHookDispatched(status string) {
	m.HooksDispatched.WithLabelValues(status).Inc()
}

// RecordEventsCleared records events removed by a clear operation.
func (m *Metrics) RecordEventsCleared(count int) {
	m.EventsCleared.Add(float64(count))
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(route, method, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(durationSeconds)
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
