package prometheus

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AlexGrady9/SuperShopBot/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Dialogue metrics
	DialogTransitionsCounter prometheus.CounterVec
	DialogRejectionsCounter  prometheus.CounterVec
	FallbackCounter          prometheus.Counter

	// Order metrics
	OrdersFinalizedCounter  prometheus.Counter
	OrderSinkFailureCounter prometheus.Counter

	// Catalog metrics
	CatalogLoadDuration prometheus.HistogramVec
	ProductViewsCounter prometheus.CounterVec

	initOnce sync.Once
	ready    atomic.Bool
)

// InitMetrics initializes Prometheus metrics with configuration.
// Metrics register against the default registry, so only the first call
// registers; the record helpers below are no-ops until it has completed.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		registerMetrics(cfg)
		ready.Store(true)
	})
}

func registerMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Dialogue transition metrics
	DialogTransitionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_dialog_transitions_total",
			Help: "Total number of dialogue stage transitions",
		},
		[]string{"from_stage", "to_stage"},
	)

	DialogRejectionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_dialog_rejections_total",
			Help: "Total number of rejected user inputs",
		},
		[]string{"stage"},
	)

	FallbackCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_dialog_fallback_total",
			Help: "Total number of messages handled by the fallback reply",
		},
	)

	// Order metrics
	OrdersFinalizedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_finalized_total",
			Help: "Total number of finalized orders",
		},
	)

	OrderSinkFailureCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_sink_failures_total",
			Help: "Total number of failed order sink appends",
		},
	)

	// Catalog metrics
	CatalogLoadDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_catalog_load_duration_seconds",
			Help:    "Duration of catalog source loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	ProductViewsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_views_total",
			Help: "Total number of product views during category browsing",
		},
		[]string{"category"},
	)
}

// TrackCatalogLoad returns a function that records the duration of a catalog load
func TrackCatalogLoad(source string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !ready.Load() {
			return
		}
		duration := time.Since(startTime).Seconds()
		CatalogLoadDuration.WithLabelValues(source).Observe(duration)
	}
}

// RecordRequest records one HTTP request with its duration
func RecordRequest(method, path, status string, seconds float64) {
	if !ready.Load() {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// RecordTransition increments the counter for dialogue stage transitions
func RecordTransition(fromStage, toStage string) {
	if !ready.Load() {
		return
	}
	DialogTransitionsCounter.WithLabelValues(fromStage, toStage).Inc()
}

// RecordRejection increments the counter for rejected user inputs
func RecordRejection(stage string) {
	if !ready.Load() {
		return
	}
	DialogRejectionsCounter.WithLabelValues(stage).Inc()
}

// RecordFallback increments the counter for fallback replies
func RecordFallback() {
	if !ready.Load() {
		return
	}
	FallbackCounter.Inc()
}

// RecordOrderFinalized increments the counter for finalized orders
func RecordOrderFinalized() {
	if !ready.Load() {
		return
	}
	OrdersFinalizedCounter.Inc()
}

// RecordOrderSinkFailure increments the counter for failed sink appends
func RecordOrderSinkFailure() {
	if !ready.Load() {
		return
	}
	OrderSinkFailureCounter.Inc()
}

// RecordProductView increments the counter for product views
func RecordProductView(category string) {
	if !ready.Load() {
		return
	}
	ProductViewsCounter.WithLabelValues(category).Inc()
}
