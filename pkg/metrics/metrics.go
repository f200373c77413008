// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// CompletionDuration tracks completion-service call duration by purpose.
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "completion_call_duration_seconds",
			Help:    "Completion service call duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"model", "purpose", "status"},
	)

	// CompletionTokensTotal tracks total tokens processed by the completion service.
	CompletionTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_tokens_total",
			Help: "Total completion tokens processed",
		},
		[]string{"model", "direction"},
	)

	// OperationsTotal tracks finished assistant operations.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_operations_total",
			Help: "Total assistant operations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// ClassificationFallbacksTotal tracks classifications that fell back to a default.
	ClassificationFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_classification_fallbacks_total",
			Help: "Language or formality detections replaced by the default",
		},
		[]string{"classifier"},
	)

	// BackfillsTotal tracks backfill requests for reply suggestions.
	BackfillsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_backfills_total",
			Help: "Backfill requests issued for incomplete suggestion sets",
		},
		[]string{"result"},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)

	// EventsPublishedTotal tracks audit events sent to NATS.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_events_published_total",
			Help: "Assistant events published to JetStream",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCompletion records metrics for one completion-service call.
func RecordCompletion(model, purpose, status string, duration float64, tokensIn, tokensOut int) {
	CompletionDuration.WithLabelValues(model, purpose, status).Observe(duration)
	if tokensIn > 0 {
		CompletionTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	}
	if tokensOut > 0 {
		CompletionTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
	}
}

// RecordOperation records the outcome of an assistant operation.
func RecordOperation(kind, outcome string) {
	OperationsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordFallback records a classification that used its default.
func RecordFallback(classifier string) {
	ClassificationFallbacksTotal.WithLabelValues(classifier).Inc()
}

// RecordBackfill records a backfill attempt and whether it completed the set.
func RecordBackfill(result string) {
	BackfillsTotal.WithLabelValues(result).Inc()
}

// RecordEventPublish records an event publish attempt.
func RecordEventPublish(status string) {
	EventsPublishedTotal.WithLabelValues(status).Inc()
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
