// Package metrics provides Prometheus metrics for the leetview service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the leetview service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Catalog Metrics
	filesListed        *prometheus.CounterVec
	solutionsRead      *prometheus.CounterVec
	segmentLatency     prometheus.Histogram
	ratingsSaved       *prometheus.CounterVec
	pathRejections     *prometheus.CounterVec
	languagesAvailable prometheus.Gauge

	// Store Metrics
	storeRecordsTotal  prometheus.Gauge
	storeQueryLatency  prometheus.Histogram
	storeUpdateLatency prometheus.Histogram
	storeErrors        *prometheus.CounterVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Active manager and the registry /metrics serves. Configure swaps both.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	globalRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // intentional global for metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, which avoids the default Go collectors. Call it before handlers
// capture GetRegistry; values recorded earlier are dropped.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append(append([]Option{}, opts...), WithPrometheusRegistry(registry))...)
	globalRegistry.Store(registry)
	globalManager.Store(m)
}

func manager() *Manager {
	return globalManager.Load()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "leetview",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often gauge metrics should be refreshed.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// Enabled reports whether metrics collection is enabled.
func (m *Manager) Enabled() bool {
	return m.enabled
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.filesListed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("files_listed_total"),
		Help:        "Total number of solution files returned by listings",
		ConstLabels: labels,
	}, []string{"language"})

	m.solutionsRead = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("solutions_read_total"),
		Help:        "Total number of solution files segmented and served",
		ConstLabels: labels,
	}, []string{"language"})

	m.segmentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("segment_latency_milliseconds"),
		Help:        "Time spent reading and segmenting a solution file",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.ratingsSaved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("ratings_saved_total"),
		Help:        "Total number of ratings saved, by rating value",
		ConstLabels: labels,
	}, []string{"rating"})

	m.pathRejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("path_rejections_total"),
		Help:        "Requests rejected by the path containment check",
		ConstLabels: labels,
	}, []string{"reason"})

	m.languagesAvailable = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("languages_available"),
		Help:        "Number of language directories found under the solutions directory",
		ConstLabels: labels,
	})

	m.storeRecordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_records_total"),
		Help:        "Number of ratings held by the rating store",
		ConstLabels: labels,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_query_latency_milliseconds"),
		Help:        "Rating store lookup latency",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_update_latency_milliseconds"),
		Help:        "Rating store upsert latency",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_errors_total"),
		Help:        "Rating store errors by operation",
		ConstLabels: labels,
	}, []string{"operation"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rating_cache_hits_total"),
		Help:        "Rating lookups served from the cache",
		ConstLabels: labels,
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rating_cache_misses_total"),
		Help:        "Rating lookups that went to the backing store",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_component_total"),
			Help:        "Total number of errors by component",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Total number of errors by type",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("error_latency_milliseconds"),
			Help:        "Latency of operations that resulted in errors",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Catalog Metrics Functions.

// RecordFilesListed adds count to the files listed for a language ("" is the flat catalog).
func RecordFilesListed(language string, count int) {
	if !manager().enabled {
		return
	}
	manager().filesListed.WithLabelValues(languageLabel(language)).Add(float64(count))
}

// RecordSolutionRead increments the served solutions counter.
func RecordSolutionRead(language string) {
	if !manager().enabled {
		return
	}
	manager().solutionsRead.WithLabelValues(languageLabel(language)).Inc()
}

// RecordSegmentLatency records read+segment latency in milliseconds.
func RecordSegmentLatency(latencyMs float64) {
	if !manager().enabled {
		return
	}
	manager().segmentLatency.Observe(latencyMs)
}

// RecordRatingSaved increments the saved ratings counter for a rating value.
func RecordRatingSaved(rating string) {
	if !manager().enabled {
		return
	}
	manager().ratingsSaved.WithLabelValues(rating).Inc()
}

// RecordPathRejection increments the rejected path counter.
func RecordPathRejection(reason string) {
	if !manager().enabled {
		return
	}
	manager().pathRejections.WithLabelValues(reason).Inc()
}

// UpdateLanguagesAvailable sets the number of language directories.
func UpdateLanguagesAvailable(count int) {
	manager().languagesAvailable.Set(float64(count))
}

// Store Metrics Functions.

// UpdateStoreRecordsTotal sets the number of stored ratings.
func UpdateStoreRecordsTotal(count int) {
	manager().storeRecordsTotal.Set(float64(count))
}

// RecordStoreQueryLatency records rating lookup latency.
func RecordStoreQueryLatency(latencyMs float64) {
	if !manager().enabled {
		return
	}
	manager().storeQueryLatency.Observe(latencyMs)
}

// RecordStoreUpdateLatency records rating upsert latency.
func RecordStoreUpdateLatency(latencyMs float64) {
	if !manager().enabled {
		return
	}
	manager().storeUpdateLatency.Observe(latencyMs)
}

// RecordStoreError increments the store error counter for an operation.
func RecordStoreError(operation string) {
	if !manager().enabled {
		return
	}
	manager().storeErrors.WithLabelValues(operation).Inc()
}

// RecordCacheHit increments the rating cache hit counter.
func RecordCacheHit() {
	if !manager().enabled {
		return
	}
	manager().cacheHits.Inc()
}

// RecordCacheMiss increments the rating cache miss counter.
func RecordCacheMiss() {
	if !manager().enabled {
		return
	}
	manager().cacheMisses.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !manager().enabled {
		return
	}
	manager().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !manager().enabled {
		return
	}
	manager().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !manager().enabled {
		return
	}
	manager().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !manager().enabled {
		return
	}
	manager().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !manager().enabled {
		return
	}
	manager().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !manager().enabled {
		return
	}
	manager().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	manager().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	manager().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	manager().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return globalRegistry.Load()
}

// RefreshInterval returns how often the active manager wants gauges refreshed.
func RefreshInterval() time.Duration {
	return manager().RefreshInterval()
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	manager().enabled = enabled
}

func languageLabel(language string) string {
	if language == "" {
		return "all"
	}
	return language
}
