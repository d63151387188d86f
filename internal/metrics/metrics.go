package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	GrantsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_grants_total",
			Help: "Total number of accepted point grants",
		},
	)

	GrantFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_grant_failures_total",
			Help: "Total number of failed point grants",
		},
	)

	GrantDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "point_grant_duration_seconds",
			Help:    "Duration of the grant write path",
			Buckets: prometheus.DefBuckets,
		},
	)

	BalanceCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_cache_hits_total",
			Help: "Total number of balance reads served from cache",
		},
	)

	BalanceCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_cache_misses_total",
			Help: "Total number of balance reads that fell through to the database",
		},
	)

	EventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_events_published_total",
			Help: "Total number of grant events delivered to the event stream",
		},
	)

	EventPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_event_publish_failures_total",
			Help: "Total number of grant events dropped after a failed or refused publish",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(GrantsTotal)
	prometheus.MustRegister(GrantFailuresTotal)
	prometheus.MustRegister(GrantDuration)
	prometheus.MustRegister(BalanceCacheHitsTotal)
	prometheus.MustRegister(BalanceCacheMissesTotal)
	prometheus.MustRegister(EventsPublishedTotal)
	prometheus.MustRegister(EventPublishFailuresTotal)
}
