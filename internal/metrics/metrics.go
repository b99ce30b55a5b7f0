// Package metrics holds the Prometheus collectors for the party server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/suggest"
)

var (
	// StageTransitions counts onboarding stage changes.
	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amigo",
		Name:      "stage_transitions_total",
		Help:      "Onboarding stage changes by source and target stage.",
	}, []string{"from", "to"})

	// ListAppends counts successful appends to the persisted lists.
	ListAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amigo",
		Name:      "list_appends_total",
		Help:      "Entries appended to the gift-idea and dinner lists.",
	}, []string{"list"})

	// Suggestions counts gift-suggestion requests by outcome.
	Suggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amigo",
		Name:      "suggestions_total",
		Help:      "Gift-suggestion requests by outcome.",
	}, []string{"outcome"})

	// HTTPRequests measures request latency by route and status class.
	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "amigo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})

	// CountdownStreams is the number of open countdown streams.
	CountdownStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "amigo",
		Name:      "countdown_streams",
		Help:      "Open countdown event streams.",
	})
)

// ObserveTransition records a stage change.
func ObserveTransition(from, to models.Stage) {
	StageTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveSuggestion records a suggestion outcome.
func ObserveSuggestion(o suggest.Outcome) {
	Suggestions.WithLabelValues(string(o)).Inc()
}
