// Package metrics provides Prometheus instrumentation for the risk webhook.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// WebhooksTotal counts processed webhook requests by result.
	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskwebhook",
			Name:      "webhooks_total",
			Help:      "Total webhook requests by result (success, invalid, unauthorized, error).",
		},
		[]string{"result"},
	)

	// RiskScoreSource counts scored transactions by score origin.
	RiskScoreSource = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskwebhook",
			Name:      "risk_score_source_total",
			Help:      "Scored transactions by source (model, fallback).",
		},
		[]string{"source"},
	)

	// RiskBand counts scored transactions by risk band.
	RiskBand = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskwebhook",
			Name:      "risk_band_total",
			Help:      "Scored transactions by risk band (low, review, high).",
		},
		[]string{"band"},
	)

	// NotificationsCreatedTotal counts persisted admin notifications.
	NotificationsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskwebhook",
			Name:      "notifications_created_total",
			Help:      "Total admin notifications persisted.",
		},
	)

	// NotificationStatusUpdates counts status transitions by new status.
	NotificationStatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskwebhook",
			Name:      "notification_status_updates_total",
			Help:      "Notification status updates by new status.",
		},
		[]string{"status"},
	)

	// LLMRequestDuration observes model call latency by outcome.
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "riskwebhook",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM risk analysis call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// Register installs all collectors on the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		WebhooksTotal,
		RiskScoreSource,
		RiskBand,
		NotificationsCreatedTotal,
		NotificationStatusUpdates,
		LLMRequestDuration,
	)
}
