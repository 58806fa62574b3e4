// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntakeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_requests_total",
			Help: "Total number of intake API requests",
		},
		[]string{"endpoint", "status"},
	)

	IntakeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_request_duration_seconds",
			Help: "Duration of intake request handling in seconds",
		},
		[]string{"endpoint"},
	)

	NotionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notion_calls_total",
			Help: "Total number of calls to the Notion API",
		},
		[]string{"operation", "outcome"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_sent_total",
			Help: "Total number of submit confirmations sent",
		},
		[]string{"channel", "outcome"},
	)
)
