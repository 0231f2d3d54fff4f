package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printlink_requests_created_total",
		Help: "Total number of print requests successfully created.",
	})

	OffersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printlink_offers_submitted_total",
		Help: "Total number of offers successfully submitted.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printlink_status_transitions_total",
		Help: "Total number of applied request status transitions.",
	},
		[]string{"from", "to"},
	)

	ClaimConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printlink_claim_conflicts_total",
		Help: "Total number of status transitions ignored because the request already moved on.",
	})

	ActiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "printlink_active_subscriptions",
		Help: "Current number of live store subscriptions.",
	})

	EventsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printlink_events_published_total",
		Help: "Total number of change events published to the broker.",
	})

	EventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printlink_event_publish_failures_total",
		Help: "Total number of change events dropped after exhausting publish attempts.",
	})
)
