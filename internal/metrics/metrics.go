package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the guide backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	GuidesSubmittedTotal  prometheus.Counter
	GuidesApprovedTotal   prometheus.Counter
	GuidesRejectedTotal   prometheus.Counter
	PostsCreatedTotal     prometheus.Counter
	CommentsCreatedTotal  prometheus.Counter
	ReportsFiledTotal     prometheus.Counter
	WarningsIssuedTotal   prometheus.Counter
	UsersRegisteredTotal  prometheus.Counter
	FeedInvalidationTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panduankota_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panduankota_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "panduankota_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panduankota_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panduankota_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		GuidesSubmittedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_guides_submitted_total",
			Help: "Guides submitted for review",
		}),
		GuidesApprovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_guides_approved_total",
			Help: "Guides approved by an admin",
		}),
		GuidesRejectedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_guides_rejected_total",
			Help: "Guides rejected by an admin",
		}),
		PostsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_posts_created_total",
			Help: "Discussion posts created",
		}),
		CommentsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_comments_created_total",
			Help: "Comments created",
		}),
		ReportsFiledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_reports_filed_total",
			Help: "Post reports filed",
		}),
		WarningsIssuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_warnings_issued_total",
			Help: "User warnings issued by admins",
		}),
		UsersRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_users_registered_total",
			Help: "Accounts registered",
		}),
		FeedInvalidationTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "panduankota_feed_invalidations_total",
			Help: "Cache invalidations triggered by store change notifications",
		}),
	}
}
