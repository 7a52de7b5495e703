// Package metrics records Prometheus metrics for storage access.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const slowQueryThreshold = 100 * time.Millisecond

var (
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openreview_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"repository", "operation"},
	)

	dbQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openreview_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"repository", "operation"},
	)

	dbQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openreview_db_query_errors_total",
			Help: "Total number of failed database queries by error code",
		},
		[]string{"repository", "operation", "code"},
	)

	dbSlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openreview_db_slow_queries_total",
			Help: "Total number of slow database queries (>100ms)",
		},
		[]string{"repository", "operation"},
	)
)

func RecordDBQuery(repository, operation string, duration time.Duration) {
	dbQueryTotal.WithLabelValues(repository, operation).Inc()
	dbQueryDuration.WithLabelValues(repository, operation).Observe(duration.Seconds())

	if duration > slowQueryThreshold {
		dbSlowQueries.WithLabelValues(repository, operation).Inc()
	}
}

func RecordDBError(repository, operation, code string) {
	dbQueryErrors.WithLabelValues(repository, operation, code).Inc()
}
