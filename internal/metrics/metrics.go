// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examdesk_remote_request_duration_seconds",
			Help:    "Duration of single requests to the script endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "outcome"},
	)

	RemoteRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examdesk_remote_retries_total",
			Help: "Total number of retried requests to the script endpoint",
		},
		[]string{"method"},
	)

	TierResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examdesk_tier_resolutions_total",
			Help: "Which tier answered an access layer operation",
		},
		[]string{"operation", "tier"},
	)

	WritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examdesk_writes_total",
			Help: "Write attempts against the script endpoint",
		},
		[]string{"action", "outcome"},
	)

	CachedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "examdesk_cached_records",
			Help: "Number of exam records in the last fetched set",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
