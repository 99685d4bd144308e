package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the parameter platform metrics
type Metrics struct {
	// Store metrics
	LoadsTotal    *prometheus.CounterVec
	LoadDuration  *prometheus.HistogramVec
	StoreKeys     *prometheus.GaugeVec
	StoreReloads  *prometheus.CounterVec
	LookupMisses  *prometheus.CounterVec
	SourceErrors  *prometheus.CounterVec

	// Source connection metrics (NATS-backed sources)
	SourceConnected  prometheus.Gauge
	SourceReconnects prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rush",
				Subsystem: "store",
				Name:      "loads_total",
				Help:      "Total number of namespace loads",
			},
			[]string{"namespace", "status"},
		),

		LoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rush",
				Subsystem: "store",
				Name:      "load_duration_seconds",
				Help:      "Namespace load duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"namespace"},
		),

		StoreKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rush",
				Subsystem: "store",
				Name:      "keys",
				Help:      "Number of keys currently held by the store",
			},
			[]string{"store"},
		),

		StoreReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rush",
				Subsystem: "store",
				Name:      "reloads_total",
				Help:      "Total number of full store reloads",
			},
			[]string{"status"},
		),

		LookupMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rush",
				Subsystem: "store",
				Name:      "lookup_misses_total",
				Help:      "Total number of lookups for absent keys",
			},
			[]string{"store"},
		),

		SourceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rush",
				Subsystem: "source",
				Name:      "errors_total",
				Help:      "Total number of source list/fetch errors",
			},
			[]string{"operation"},
		),

		SourceConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rush",
				Subsystem: "source",
				Name:      "connected",
				Help:      "Source connection status (1=connected, 0=disconnected)",
			},
		),

		SourceReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "rush",
				Subsystem: "source",
				Name:      "reconnects_total",
				Help:      "Total number of source reconnections",
			},
		),
	}
}

// RecordLoad records one namespace load with its outcome and duration
func (m *Metrics) RecordLoad(namespace, status string, d time.Duration) {
	m.LoadsTotal.WithLabelValues(namespace, status).Inc()
	m.LoadDuration.WithLabelValues(namespace).Observe(d.Seconds())
}

// RecordKeys records the current key count for a store
func (m *Metrics) RecordKeys(store string, n int) {
	m.StoreKeys.WithLabelValues(store).Set(float64(n))
}

// RecordReload records one full reload with its outcome
func (m *Metrics) RecordReload(status string) {
	m.StoreReloads.WithLabelValues(status).Inc()
}

// RecordLookupMiss records a lookup for an absent key
func (m *Metrics) RecordLookupMiss(store string) {
	m.LookupMisses.WithLabelValues(store).Inc()
}

// RecordSourceError records a source-side list or fetch failure
func (m *Metrics) RecordSourceError(operation string) {
	m.SourceErrors.WithLabelValues(operation).Inc()
}
