// Package metrics provides Prometheus metrics for the hackstack service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// confidenceBuckets cover the 0..100 confidence range in steps of ten.
var confidenceBuckets = prometheus.LinearBuckets(10, 10, 10) //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the hackstack service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Recommendation and search
	recommendations          *prometheus.CounterVec
	recommendationConfidence prometheus.Histogram
	recommendationLatency    prometheus.Histogram
	searches                 *prometheus.CounterVec
	searchResults            prometheus.Histogram
	searchLatency            prometheus.Histogram

	// Catalog
	catalogHackathons       *prometheus.GaugeVec
	catalogParticipants     prometheus.Gauge
	catalogMutations        *prometheus.CounterVec
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// Idempotency
	idempotentReplays prometheus.Counter
	idempotencyKeys   prometheus.Gauge

	// Agent tools
	mcpToolCalls *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hackstack",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.recommendations = auto.NewCounterVec(
		m.counterOpts("recommendations_total", "Recommendation requests by the stage that answered them"),
		[]string{"stage"},
	)
	m.recommendationConfidence = auto.NewHistogram(
		m.histogramOpts("recommendation_confidence", "Confidence score of returned recommendations", confidenceBuckets),
	)
	m.recommendationLatency = auto.NewHistogram(
		m.histogramOpts("recommendation_latency_milliseconds", "Time spent ranking a catalog snapshot", m.histogramBuckets),
	)
	m.searches = auto.NewCounterVec(
		m.counterOpts("searches_total", "Search requests by the cascade stage that answered them"),
		[]string{"stage"},
	)
	m.searchResults = auto.NewHistogram(
		m.histogramOpts("search_results", "Number of hackathons returned per search", prometheus.ExponentialBuckets(1, 2, 10)),
	)
	m.searchLatency = auto.NewHistogram(
		m.histogramOpts("search_latency_milliseconds", "Time spent running the search cascade", m.histogramBuckets),
	)

	m.catalogHackathons = auto.NewGaugeVec(
		m.gaugeOpts("hackathons", "Hackathons in the catalog by status"),
		[]string{"status"},
	)
	m.catalogParticipants = auto.NewGauge(
		m.gaugeOpts("participants", "Registered participants across the catalog"),
	)
	m.catalogMutations = auto.NewCounterVec(
		m.counterOpts("mutations_total", "Catalog writes by operation"),
		[]string{"operation"},
	)
	m.repositoryUpdateLatency = auto.NewHistogram(
		m.histogramOpts("repository_update_latency_milliseconds", "Repository write latency in milliseconds", m.histogramBuckets),
	)
	m.repositoryQueryLatency = auto.NewHistogram(
		m.histogramOpts("repository_query_latency_milliseconds", "Repository read latency in milliseconds", m.histogramBuckets),
	)

	m.idempotentReplays = auto.NewCounter(
		m.counterOpts("idempotent_replays_total", "Create requests answered from a remembered Idempotency-Key"),
	)
	m.idempotencyKeys = auto.NewGauge(
		m.gaugeOpts("idempotency_keys", "Idempotency keys currently remembered"),
	)

	m.mcpToolCalls = auto.NewCounterVec(
		m.counterOpts("mcp_tool_calls_total", "MCP tool invocations by tool and outcome"),
		[]string{"tool", "outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Recommendation and search.

// RecordRecommendation counts a recommendation answered by stage.
func RecordRecommendation(stage string) {
	globalManager.recommendations.WithLabelValues(stage).Inc()
}

// RecordRecommendationConfidence observes one returned confidence score.
func RecordRecommendationConfidence(score int) {
	globalManager.recommendationConfidence.Observe(float64(score))
}

// RecordRecommendationLatency records ranking latency in milliseconds.
func RecordRecommendationLatency(latencyMs float64) {
	globalManager.recommendationLatency.Observe(latencyMs)
}

// RecordSearch counts a search answered by stage and observes its result size.
func RecordSearch(stage string, results int) {
	globalManager.searches.WithLabelValues(stage).Inc()
	globalManager.searchResults.Observe(float64(results))
}

// RecordSearchLatency records cascade latency in milliseconds.
func RecordSearchLatency(latencyMs float64) {
	globalManager.searchLatency.Observe(latencyMs)
}

// Catalog.

// UpdateCatalogHackathons sets the hackathon count for a status.
func UpdateCatalogHackathons(status string, count int) {
	globalManager.catalogHackathons.WithLabelValues(status).Set(float64(count))
}

// UpdateCatalogParticipants sets the total participant count.
func UpdateCatalogParticipants(count int) {
	globalManager.catalogParticipants.Set(float64(count))
}

// RecordCatalogMutation counts a create, update or delete.
func RecordCatalogMutation(operation string) {
	globalManager.catalogMutations.WithLabelValues(operation).Inc()
}

// RecordRepositoryUpdateLatency records repository write latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records repository read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// Idempotency.

// RecordIdempotentReplay counts a create answered from a remembered key.
func RecordIdempotentReplay() {
	globalManager.idempotentReplays.Inc()
}

// UpdateIdempotencyKeys sets the number of remembered keys.
func UpdateIdempotencyKeys(count int64) {
	globalManager.idempotencyKeys.Set(float64(count))
}

// RecordMCPToolCall counts an MCP tool call. outcome is "ok" or "error".
func RecordMCPToolCall(tool, outcome string) {
	globalManager.mcpToolCalls.WithLabelValues(tool, outcome).Inc()
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
