// Package metrics provides Prometheus metrics for the docqa store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics for the store. Each instance owns its
// registry so several stores (e.g. in tests) can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	// Dataset persistence metrics
	DatasetOperationsTotal   *prometheus.CounterVec
	DatasetOperationDuration *prometheus.HistogramVec
	DatasetSizeBytes         *prometheus.GaugeVec

	// Domain metrics
	UsersTotal        prometheus.Gauge
	DocumentsTotal    prometheus.Gauge
	InteractionsTotal prometheus.Gauge
	DocumentUploads   *prometheus.CounterVec
	AuthAttemptsTotal *prometheus.CounterVec
	AnswersTotal      *prometheus.CounterVec
	AnswerDuration    prometheus.Histogram
}

// NewMetrics creates all metrics and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{Registry: reg}

	m.DatasetOperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_dataset_operations_total",
			Help: "Total number of dataset loads and saves",
		},
		[]string{"dataset", "operation", "status"},
	)

	m.DatasetOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docqa_dataset_operation_duration_seconds",
			Help:    "Duration of dataset loads and saves in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"dataset", "operation"},
	)

	m.DatasetSizeBytes = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "docqa_dataset_size_bytes",
			Help: "Size of the last persisted encoding of each dataset",
		},
		[]string{"dataset"},
	)

	m.UsersTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docqa_users_total",
			Help: "Number of registered users",
		},
	)

	m.DocumentsTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docqa_documents_total",
			Help: "Number of (owner, name) documents",
		},
	)

	m.InteractionsTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docqa_interactions_total",
			Help: "Number of records in the interaction log",
		},
	)

	m.DocumentUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_document_uploads_total",
			Help: "Document uploads by kind (new or revision)",
		},
		[]string{"kind"},
	)

	m.AuthAttemptsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_auth_attempts_total",
			Help: "Authentication attempts by status",
		},
		[]string{"status"},
	)

	m.AnswersTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_answers_total",
			Help: "Questions asked by outcome",
		},
		[]string{"status"},
	)

	m.AnswerDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docqa_answer_duration_seconds",
			Help:    "Time spent waiting for the answer generator",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	return m
}

// RecordDatasetOperation records a dataset load or save.
func (m *Metrics) RecordDatasetOperation(dataset, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.DatasetOperationsTotal.WithLabelValues(dataset, operation, status(err)).Inc()
	m.DatasetOperationDuration.WithLabelValues(dataset, operation).Observe(duration.Seconds())
}

// RecordDatasetSize records the encoded size of a dataset.
func (m *Metrics) RecordDatasetSize(dataset string, size int) {
	if m == nil {
		return
	}
	m.DatasetSizeBytes.WithLabelValues(dataset).Set(float64(size))
}

// RecordAuth records an authentication attempt.
func (m *Metrics) RecordAuth(err error) {
	if m == nil {
		return
	}
	m.AuthAttemptsTotal.WithLabelValues(status(err)).Inc()
}

// RecordUpload records a committed document upload.
func (m *Metrics) RecordUpload(version int) {
	if m == nil {
		return
	}
	kind := "revision"
	if version == 1 {
		kind = "new"
	}
	m.DocumentUploads.WithLabelValues(kind).Inc()
}

// RecordAnswer records a call to the answer generator.
func (m *Metrics) RecordAnswer(err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.AnswersTotal.WithLabelValues(status(err)).Inc()
	m.AnswerDuration.Observe(duration.Seconds())
}

// UpdateCounts updates the collection size gauges.
func (m *Metrics) UpdateCounts(users, documents, interactions int) {
	if m == nil {
		return
	}
	m.UsersTotal.Set(float64(users))
	m.DocumentsTotal.Set(float64(documents))
	m.InteractionsTotal.Set(float64(interactions))
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
