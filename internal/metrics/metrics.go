// Package metrics defines and registers the service's Prometheus metrics.
// It is the single source of truth for metric names, labels, and help
// strings. Collectors register themselves on the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sentinelchat"

// SessionsStartedTotal counts sessions created
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of chat sessions started.",
	},
)

// LoginsTotal counts successful logins by selected role
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by role.",
	},
	[]string{"role"},
)

// QuestionsTotal counts submitted questions by classified intent
var QuestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_total",
		Help:      "Total number of submitted questions, by classified intent.",
	},
	[]string{"intent"},
)

// RosterUpdatesTotal counts live injury updates applied
var RosterUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_updates_total",
		Help:      "Total number of live injury updates applied.",
	},
)

// HTTPRequestDuration measures request latency by method, route and status
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
