// Package metrics defines and registers the client's Prometheus metrics. It
// is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at import time and are exposed
// by the diagnostics server when it is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketclient"

// BackendRequestsTotal counts backend API calls.
// Labels:
//   - endpoint: logical endpoint name (e.g. "cart_fetch", "authenticate")
//   - outcome: "ok" or "error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// BackendRequestDuration measures the wall time of each backend call.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// CartSyncsTotal counts cart synchronization operations.
// Labels:
//   - operation: "load", "set_quantity", "remove", "clear"
//   - outcome: "ok" or "error"
var CartSyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_syncs_total",
		Help:      "Total number of cart synchronization operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// StaleResponsesDiscardedTotal counts cart load responses dropped because a
// fresher response had already been applied.
var StaleResponsesDiscardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_discarded_total",
		Help:      "Total number of cart responses discarded by generation tracking.",
	},
)

// BadgePollsTotal counts badge poller ticks.
// Label:
//   - outcome: "ok" or "error"
var BadgePollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "badge_polls_total",
		Help:      "Total number of badge count polls, by outcome.",
	},
	[]string{"outcome"},
)

// SessionEventsTotal counts session lifecycle events.
// Labels:
//   - event: "login", "logout"
//   - outcome: "ok" or "error"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events, by event and outcome.",
	},
	[]string{"event", "outcome"},
)
