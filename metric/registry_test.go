package metric

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_RegisterCollector(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCollector("test-source", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	// Verify the counter is registered in the underlying Prometheus registry
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_counter" {
			found = true
			break
		}
	}
	assert.True(t, found, "Counter should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterGaugeAndHistogram(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_histogram",
		Help:    "A test histogram",
		Buckets: prometheus.DefBuckets,
	})

	require.NoError(t, registry.RegisterCollector("test-source", "test_gauge", gauge))
	require.NoError(t, registry.RegisterCollector("test-source", "test_histogram", histogram))

	gauge.Set(42.0)
	histogram.Observe(1.5)

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	foundMetrics := make(map[string]bool)
	for _, mf := range metricFamilies {
		foundMetrics[mf.GetName()] = true
	}
	assert.True(t, foundMetrics["test_gauge"])
	assert.True(t, foundMetrics["test_histogram"])
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})

	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter", // Same help to avoid Prometheus validation error
	})

	// First registration should succeed
	err := registry.RegisterCollector("source1", "duplicate_counter", counter1)
	require.NoError(t, err)

	// Second registration with the same prometheus name should fail
	err = registry.RegisterCollector("source2", "duplicate_counter", counter2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	})

	require.NoError(t, registry.RegisterCollector("test-source", "unregister_counter", counter))

	success := registry.Unregister("test-source", "unregister_counter")
	assert.True(t, success)

	// Unknown metrics report failure
	assert.False(t, registry.Unregister("test-source", "never_registered"))

	// Verify it's no longer registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	for _, mf := range metricFamilies {
		assert.NotEqual(t, "unregister_counter", mf.GetName())
	}
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	// Register metrics concurrently
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", id),
				Help: "A concurrent counter",
			})

			err := registry.RegisterCollector("concurrent-source",
				fmt.Sprintf("concurrent_counter_%d", id), counter)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	// Verify all metrics were registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	counterCount := 0
	for _, mf := range metricFamilies {
		if strings.HasPrefix(mf.GetName(), "concurrent_counter_") {
			counterCount++
		}
	}

	assert.Equal(t, numGoroutines, counterCount,
		"All concurrent counters should be registered")
}

func TestMetricsRegistry_CoreMetricsInitialization(t *testing.T) {
	registry := NewMetricsRegistry()

	// Vector metrics don't appear in Gather() until they have at least one
	// value set, so record through the core metrics first
	coreMetrics := registry.CoreMetrics()

	coreMetrics.RecordLoad("/robot", "success", 10*time.Millisecond)
	coreMetrics.RecordKeys("store", 3)
	coreMetrics.RecordReload("success")
	coreMetrics.RecordLookupMiss("store")
	coreMetrics.RecordSourceError("list")

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	expectedCoreMetrics := []string{
		"rush_store_loads_total",
		"rush_store_load_duration_seconds",
		"rush_store_keys",
		"rush_store_reloads_total",
		"rush_store_lookup_misses_total",
		"rush_source_errors_total",
		"rush_source_connected",
		"rush_source_reconnects_total",
	}

	foundMetrics := make(map[string]bool)
	for _, mf := range metricFamilies {
		foundMetrics[mf.GetName()] = true
	}

	for _, expectedMetric := range expectedCoreMetrics {
		assert.True(t, foundMetrics[expectedMetric],
			"core metric %s should be initialized", expectedMetric)
	}
}

func TestCoreMetrics_RecordMethods(t *testing.T) {
	registry := NewMetricsRegistry()
	coreMetrics := registry.CoreMetrics()

	coreMetrics.RecordLoad("/robot/arm", "failure", 100*time.Millisecond)
	coreMetrics.RecordKeys("arm-store", 12)
	coreMetrics.RecordReload("failure")
	coreMetrics.RecordLookupMiss("arm-store")
	coreMetrics.RecordSourceError("get")
	coreMetrics.SourceConnected.Set(1)
	coreMetrics.SourceReconnects.Inc()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	assert.Greater(t, len(metricFamilies), 0, "Should have recorded metrics")
}
