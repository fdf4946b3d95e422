// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_requests_total",
			Help: "Total number of calls made to the recommendation service",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommender_request_duration_seconds",
			Help: "Duration of recommendation service calls in seconds",
		},
		[]string{"operation"},
	)

	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_page_renders_total",
			Help: "Total number of rendered pages by route",
		},
		[]string{"route", "lang"},
	)

	ViewActionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_view_actions_failed_total",
			Help: "Total number of failed view actions",
		},
		[]string{"view", "action", "error_code"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "web_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)
