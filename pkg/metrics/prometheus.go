package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset metrics, set once after the snapshot is built.
	datasetRows          prometheus.Gauge
	datasetTeams         prometheus.Gauge
	datasetUnbucketed    prometheus.Gauge
	datasetUnlocated     prometheus.Gauge
	datasetLoadDuration  prometheus.Gauge
	datasetLoadFailures  *prometheus.CounterVec
	datasetLoadTimestamp prometheus.Gauge

	// Chart metrics
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec
	chartRenderErrors  *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics singleton

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hoopboard",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(m.gaugeOpts("dataset_rows", "Number of player records loaded"))
	m.datasetTeams = auto.NewGauge(m.gaugeOpts("dataset_teams", "Number of distinct teams in the team aggregate"))
	m.datasetUnbucketed = auto.NewGauge(m.gaugeOpts("dataset_unbucketed_ratings", "Records whose rating falls outside every interval"))
	m.datasetUnlocated = auto.NewGauge(m.gaugeOpts("dataset_unlocated_countries", "Countries dropped from the map because they could not be located"))
	m.datasetLoadDuration = auto.NewGauge(m.gaugeOpts("dataset_load_duration_milliseconds", "Time spent loading and preparing the dataset"))
	m.datasetLoadTimestamp = auto.NewGauge(m.gaugeOpts("dataset_load_timestamp_seconds", "Unix time of the last successful dataset load"))
	m.datasetLoadFailures = auto.NewCounterVec(m.counterOpts("dataset_load_failures_total", "Dataset load failures by reason"), []string{"reason"})

	m.chartRenders = auto.NewCounterVec(m.counterOpts("chart_renders_total", "Chart renders by chart id and output format"), []string{"chart", "format"})
	m.chartRenderLatency = auto.NewHistogramVec(m.histogramOpts("chart_render_latency_milliseconds", "Chart render latency by chart id and output format"), []string{"chart", "format"})
	m.chartRenderErrors = auto.NewCounterVec(m.counterOpts("chart_render_errors_total", "Chart render failures by chart id and output format"), []string{"chart", "format"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "Total number of HTTP requests"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewGauge(m.gaugeOpts("system_gc_pause_milliseconds", "Average GC pause time"))
}

// DatasetStats is the summary published after a successful load.
type DatasetStats struct {
	Rows       int
	Teams      int
	Unbucketed int
	Unlocated  int
	LoadMs     float64
	LoadedUnix int64
}

// RecordDatasetLoaded publishes the dataset gauges.
func RecordDatasetLoaded(s DatasetStats) {
	globalManager.RecordDatasetLoaded(s)
}

// RecordDatasetLoaded publishes the dataset gauges on m.
func (m *Manager) RecordDatasetLoaded(s DatasetStats) {
	m.datasetRows.Set(float64(s.Rows))
	m.datasetTeams.Set(float64(s.Teams))
	m.datasetUnbucketed.Set(float64(s.Unbucketed))
	m.datasetUnlocated.Set(float64(s.Unlocated))
	m.datasetLoadDuration.Set(s.LoadMs)
	m.datasetLoadTimestamp.Set(float64(s.LoadedUnix))
}

// RecordDatasetLoadFailure counts a failed load, labelled by reason.
func RecordDatasetLoadFailure(reason string) {
	globalManager.datasetLoadFailures.WithLabelValues(reason).Inc()
}

// RecordChartRender counts a render and observes its latency.
func RecordChartRender(chartID, format string, latencyMs float64) {
	globalManager.RecordChartRender(chartID, format, latencyMs)
}

// RecordChartRender counts a render and observes its latency on m.
func (m *Manager) RecordChartRender(chartID, format string, latencyMs float64) {
	m.chartRenders.WithLabelValues(chartID, format).Inc()
	m.chartRenderLatency.WithLabelValues(chartID, format).Observe(latencyMs)
}

// RecordChartRenderError counts a failed render.
func RecordChartRenderError(chartID, format string) {
	globalManager.chartRenderErrors.WithLabelValues(chartID, format).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime sets the average GC pause in milliseconds.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Set(ms)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
