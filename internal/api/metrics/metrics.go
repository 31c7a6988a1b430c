// Package metrics defines and registers all custom Prometheus metrics for the
// collection-network API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collecte"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - outcome: "success", "invalid_credentials", "unknown_role", "persistence"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// CollectionsRecordedTotal counts recorded cash collections.
// Label:
//   - payment_mode: "cash" or "mobile_money"
var CollectionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collections_recorded_total",
		Help:      "Total number of cash collections recorded, by payment mode.",
	},
	[]string{"payment_mode"},
)

// WithdrawalsRecordedTotal counts recorded withdrawals.
var WithdrawalsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "withdrawals_recorded_total",
		Help:      "Total number of withdrawals recorded.",
	},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// AggregationSourceFailuresTotal counts per-account sub-fetches that failed
// during a fan-out aggregation (the aggregate itself still completes).
var AggregationSourceFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregation_source_failures_total",
		Help:      "Total number of failed per-account ledger fetches during aggregation.",
	},
)

// BalanceDiscrepanciesTotal counts reconciliation mismatches between the
// store-reported balance and the recomputed ledger sum.
var BalanceDiscrepanciesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_discrepancies_total",
		Help:      "Total number of balance reconciliation discrepancies surfaced.",
	},
)

// AggregationDuration measures how long a dashboard aggregation takes end-to-end.
// Label:
//   - view: "agent_dashboard" or "commercant_summary"
var AggregationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Duration of dashboard aggregation from request to view model.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"view"},
)

// ── KYC metrics ───────────────────────────────────────────────────────────────

// KycDecisionsTotal counts submitted KYC decisions.
// Label:
//   - decision: "APPROVED" or "REJECTED"
var KycDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kyc_decisions_total",
		Help:      "Total number of KYC decisions submitted, by decision.",
	},
	[]string{"decision"},
)
