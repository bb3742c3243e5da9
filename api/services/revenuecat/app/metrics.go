package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tenderguard_webhook_events_total",
		Help: "RevenueCat webhook events by type and outcome.",
	}, []string{"type", "outcome"})

	purchaseVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tenderguard_purchase_verifications_total",
		Help: "Purchase verification attempts by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeApplied   = "applied"
	outcomeStale     = "stale"
	outcomeUnhandled = "unhandled"
	outcomeError     = "error"
	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
)

// metricType bounds label cardinality: the webhook is unauthenticated, so unknown
// event types share one label value.
func metricType(eventType string) string {
	if _, ok := StatusForEventType(eventType); ok {
		return eventType
	}
	return "other"
}
