package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsRaised counts raise calls by event kind and outcome (created|suppressed).
	NotificationsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastropro_notifications_raised_total",
			Help: "Total number of notification events raised",
		},
		[]string{"kind", "outcome"},
	)

	// NotificationRaiseFailures counts side-effect raises that failed and were swallowed by the caller.
	NotificationRaiseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastropro_notification_raise_failures_total",
			Help: "Total number of notification raises that failed during a primary action",
		},
		[]string{"kind"},
	)

	// NotificationsPurged counts notifications removed by the expiry sweep.
	NotificationsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gastropro_notifications_purged_total",
			Help: "Total number of expired notifications purged",
		},
	)

	// MaintenanceRuns records maintenance job executions by job and result (success|failure).
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastropro_maintenance_runs_total",
			Help: "Total number of maintenance job runs",
		},
		[]string{"job", "result"},
	)

	// RealtimeConnections tracks open notification feed sockets.
	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gastropro_realtime_connections",
			Help: "Number of connected notification feed clients",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gastropro_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
