// Package metrics defines and registers all custom Prometheus metrics for the
// visitor admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "visitor_admin"

// ── Visitor metrics ───────────────────────────────────────────────────────────

// VisitorsCheckedInTotal counts check-ins.
// Label:
//   - visitor_type: "foot" or "vehicle"
var VisitorsCheckedInTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visitors_checked_in_total",
		Help:      "Total number of visitors checked in, by visitor type.",
	},
	[]string{"visitor_type"},
)

// VisitorsCheckedOutTotal counts successful check-outs.
var VisitorsCheckedOutTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visitors_checked_out_total",
		Help:      "Total number of visitors checked out.",
	},
)

// VisitorEditsTotal counts field edits that were recorded in history.
// Label:
//   - field: the edited field name (e.g. "visitorName")
var VisitorEditsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visitor_edits_total",
		Help:      "Total number of recorded visitor field edits, by field.",
	},
	[]string{"field"},
)

// VisitorsOverdue is the overdue count seen by the last overdue query.
// Label:
//   - severity: "medium", "high" or "critical"
var VisitorsOverdue = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "visitors_overdue",
		Help:      "Number of overdue visitors at the last overdue query, by severity.",
	},
	[]string{"severity"},
)

// ── Presence metrics ──────────────────────────────────────────────────────────

// HeartbeatsProcessedTotal counts heartbeats stored successfully.
// Label:
//   - state: "online" or "offline"
var HeartbeatsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "heartbeats_processed_total",
		Help:      "Total number of presence heartbeats successfully processed.",
	},
	[]string{"state"},
)

// HeartbeatsErrorsTotal counts heartbeats that failed processing.
// Label:
//   - reason: "invalid" or "store_failed"
var HeartbeatsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "heartbeats_errors_total",
		Help:      "Total number of presence heartbeats that failed processing.",
	},
	[]string{"reason"},
)

// PresenceQueueDepth tracks heartbeats waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PresenceQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "presence_queue_depth",
		Help:      "Current number of heartbeats pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// HeartbeatProcessingDuration measures dequeue-to-store latency.
var HeartbeatProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "heartbeat_processing_duration_seconds",
		Help:      "Duration of heartbeat processing from dequeue to store.",
		Buckets:   prometheus.DefBuckets,
	},
)
