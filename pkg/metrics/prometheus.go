// Package metrics provides Prometheus metrics for the gully recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the gully service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingest metrics - match corpus quality
	matchesParsed    prometheus.Counter
	matchesSkipped   prometheus.Counter
	deliveriesScored prometheus.Counter

	// Training metrics
	trainingRuns     prometheus.Counter
	trainingDuration prometheus.Histogram
	playersTracked   prometheus.Gauge
	snapshotLastUnix prometheus.Gauge

	// Query metrics
	recommendations prometheus.Counter
	liveScoreErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gully",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_parsed_total",
		Help:      "Total number of match records parsed from the data directory",
	})

	m.matchesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_skipped_total",
		Help:      "Total number of malformed match records skipped during parsing",
	})

	m.deliveriesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deliveries_scored_total",
		Help:      "Total number of deliveries run through the scoring engine",
	})

	m.trainingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_runs_total",
		Help:      "Total number of model training runs",
	})

	m.trainingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_duration_milliseconds",
		Help:      "Model training duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of players in the current model snapshot",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last model snapshot swap",
	})

	m.recommendations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Total number of recommendation queries served",
	})

	m.liveScoreErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_score_errors_total",
		Help:      "Total number of live score fetch failures",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording through the global manager.

func RecordMatchParsed()    { globalManager.matchesParsed.Inc() }
func RecordMatchSkipped()   { globalManager.matchesSkipped.Inc() }
func RecordDeliveryScored() { globalManager.deliveriesScored.Inc() }
func RecordRecommendation() { globalManager.recommendations.Inc() }
func RecordLiveScoreError() { globalManager.liveScoreErrors.Inc() }

// AddDeliveriesScored bulk-records scored deliveries after a training walk.
func AddDeliveriesScored(n int) {
	if n > 0 {
		globalManager.deliveriesScored.Add(float64(n))
	}
}

// RecordTrainingRun records one completed training run and its duration.
func RecordTrainingRun(durationMs float64) {
	globalManager.trainingRuns.Inc()
	globalManager.trainingDuration.Observe(durationMs)
}

// UpdatePlayersTracked sets the number of players in the active snapshot.
func UpdatePlayersTracked(n int) {
	globalManager.playersTracked.Set(float64(n))
}

// UpdateSnapshotTime records the unix time of the last snapshot swap.
func UpdateSnapshotTime(unix int64) {
	globalManager.snapshotLastUnix.Set(float64(unix))
}

// RecordHTTPRequest records an HTTP request with endpoint, method, and status code.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
