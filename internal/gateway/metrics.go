package gateway

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks pipeline counters. Counters are exported through the
// Prometheus registry served on /metrics; atomic mirrors back the cheap
// JSON snapshot on /status.
type Metrics struct {
	registry *prometheus.Registry

	updatesReceived *prometheus.CounterVec
	updatesRejected *prometheus.CounterVec
	translations    prometheus.Counter
	translationErrs prometheus.Counter
	translationTime prometheus.Histogram

	updates      atomic.Int64
	rejected     atomic.Int64
	translated   atomic.Int64
	errors       atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// NewMetrics creates a Metrics with its own Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updatesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tolka",
			Name:      "updates_received_total",
			Help:      "Webhook updates accepted for processing.",
		}, []string{"source"}),
		updatesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tolka",
			Name:      "updates_rejected_total",
			Help:      "Webhook requests rejected before processing.",
		}, []string{"source", "reason"}),
		translations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tolka",
			Name:      "translations_total",
			Help:      "Translations completed and delivered.",
		}),
		translationErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tolka",
			Name:      "translation_errors_total",
			Help:      "Translation pipeline failures.",
		}),
		translationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tolka",
			Name:      "translation_duration_seconds",
			Help:      "End-to-end translation latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.updatesReceived,
		m.updatesRejected,
		m.translations,
		m.translationErrs,
		m.translationTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordUpdate records an accepted webhook update.
func (m *Metrics) RecordUpdate(source string) {
	if m == nil {
		return
	}
	m.updatesReceived.WithLabelValues(source).Inc()
	m.updates.Add(1)
}

// RecordRejected records a webhook request rejected before processing.
func (m *Metrics) RecordRejected(source, reason string) {
	if m == nil {
		return
	}
	m.updatesRejected.WithLabelValues(source, reason).Inc()
	m.rejected.Add(1)
}

// RecordTranslation records a completed translation and its latency.
func (m *Metrics) RecordTranslation(latency time.Duration) {
	if m == nil {
		return
	}
	m.translations.Inc()
	m.translationTime.Observe(latency.Seconds())
	m.translated.Add(1)
	m.totalLatency.Add(int64(latency))
}

// RecordError records a translation pipeline failure.
func (m *Metrics) RecordError() {
	if m == nil {
		return
	}
	m.translationErrs.Inc()
	m.errors.Add(1)
}

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	translated := m.translated.Load()
	snap := MetricsSnapshot{
		Updates:      m.updates.Load(),
		Rejected:     m.rejected.Load(),
		Translations: translated,
		Errors:       m.errors.Load(),
	}
	if translated > 0 {
		snap.AvgLatency = time.Duration(m.totalLatency.Load() / translated)
	}
	return snap
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Updates      int64         `json:"updates"`
	Rejected     int64         `json:"rejected"`
	Translations int64         `json:"translations"`
	Errors       int64         `json:"errors"`
	AvgLatency   time.Duration `json:"avg_latency_ns"`
}
