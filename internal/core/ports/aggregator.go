package ports

import (
	"context"
	"time"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// AccountsSummary is the display convenience derived from an ordered account
// sequence: the primary account is simply the first one supplied.
type AccountsSummary struct {
	PrimaryAccountNumber string  `json:"primary_account_number,omitempty"`
	TotalBalance         float64 `json:"total_balance"`
}

// ObjectiveRate reports monthly-objective completion. Raw is unclamped so
// over-achievement stays visible as text; Display saturates at [0, 100] for
// progress bars. A zero or absent objective yields Applicable=false instead
// of a numeric error.
type ObjectiveRate struct {
	Raw        float64 `json:"raw"`
	Display    float64 `json:"display"`
	Applicable bool    `json:"applicable"`
}

// AccountLedger is one account's movement history gathered during a fan-out
// fetch. Collections are sorted most recent first.
type AccountLedger struct {
	AccountNumber string
	Collections   []domain.Collection
	Withdrawals   []domain.Withdrawal
}

// LedgerAggregate joins independently fetched per-account ledgers. A failed
// sub-fetch contributes zero to the totals and appears in Failures; it never
// voids the rest.
type LedgerAggregate struct {
	Ledgers         []AccountLedger
	CollectionTotal float64
	Failures        []domain.SourceFailure
}

// AgentDashboard is the view model behind the agent landing page.
type AgentDashboard struct {
	Agent          domain.Agent           `json:"agent"`
	Statistics     domain.AgentStatistics `json:"statistics"`
	ObjectiveRate  ObjectiveRate          `json:"objective_rate"`
	TodayTotal     float64                `json:"today_total"`
	Recent         []domain.Collection    `json:"recent_collections"`
	StatisticsFrom string                 `json:"statistics_from"` // "store" or "recomputed"
}

// CommercantSummary is the view model behind the client dashboard.
type CommercantSummary struct {
	Commercant    domain.Commercant           `json:"commercant"`
	Accounts      []domain.Account            `json:"accounts"`
	Summary       AccountsSummary             `json:"summary"`
	Collections   []domain.Collection         `json:"collections"`
	Withdrawals   []domain.Withdrawal         `json:"withdrawals"`
	Discrepancies []domain.BalanceDiscrepancy `json:"discrepancies,omitempty"`
	Failures      []domain.SourceFailure      `json:"failed_sources,omitempty"`
}

// Aggregator derives summary figures from raw ledger collections.
type Aggregator interface {
	// AgentDashboard builds the agent view: objective rate against the
	// monthly objective, today's calendar-day total in loc, and recent
	// collections.
	AgentDashboard(ctx context.Context, p domain.Principal, loc *time.Location) (*AgentDashboard, error)

	// CommercantSummary builds the client view from a per-account fan-out
	// joined all-settled, with balance reconciliation per account.
	CommercantSummary(ctx context.Context, p domain.Principal) (*CommercantSummary, error)
}
