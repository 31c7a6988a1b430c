package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

const recentCollectionsLimit = 10

// AggregatorService derives the dashboard figures from raw ledger entries.
// Per-account data is fetched concurrently and joined all-settled: a failed
// sub-fetch contributes zero and is reported, never silently dropped and
// never fatal to the rest.
type AggregatorService struct {
	identity    ports.IdentityService
	agents      ports.AgentRepository
	accounts    ports.AccountRepository
	collections ports.CollectionRepository
	withdrawals ports.WithdrawalRepository
	log         zerolog.Logger

	// guards tags loads per user so a superseded dashboard load cannot
	// overwrite the snapshot committed by a newer one.
	guards    sync.Map // userID -> *LoadGuard
	snapshots sync.Map // userID -> committed view model
}

func NewAggregatorService(
	identity ports.IdentityService,
	agents ports.AgentRepository,
	accounts ports.AccountRepository,
	collections ports.CollectionRepository,
	withdrawals ports.WithdrawalRepository,
	log zerolog.Logger,
) *AggregatorService {
	return &AggregatorService{
		identity:    identity,
		agents:      agents,
		accounts:    accounts,
		collections: collections,
		withdrawals: withdrawals,
		log:         log,
	}
}

// ---------------------------------------------------------------------------
// Pure derivations
// ---------------------------------------------------------------------------

// TotalBalance sums current balances. Zero for an empty set; additive and
// order-independent.
func TotalBalance(accounts []domain.Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.CurrentBalance
	}
	return total
}

// SummarizeAccounts derives the accounts summary. The primary account is the
// first of the supplied ordered sequence — a display convenience, not a
// business rule. An empty sequence yields (absent, 0).
func SummarizeAccounts(accounts []domain.Account) ports.AccountsSummary {
	summary := ports.AccountsSummary{TotalBalance: TotalBalance(accounts)}
	if len(accounts) > 0 {
		summary.PrimaryAccountNumber = accounts[0].AccountNumber
	}
	return summary
}

// ComputeObjectiveRate derives collected/objective as a percentage. Raw is
// unclamped; Display saturates at [0, 100]. A zero or negative objective is
// the not-applicable sentinel, never a division error.
func ComputeObjectiveRate(collected, objective float64) ports.ObjectiveRate {
	if objective <= 0 {
		return ports.ObjectiveRate{}
	}
	raw := collected / objective * 100
	display := raw
	if display > 100 {
		display = 100
	}
	if display < 0 {
		display = 0
	}
	return ports.ObjectiveRate{Raw: raw, Display: display, Applicable: true}
}

// PeriodTotal sums collections whose timestamp falls on or after the calendar
// day of since, in loc. Calendar-day comparison, not a rolling 24-hour
// window.
func PeriodTotal(collections []domain.Collection, since time.Time, loc *time.Location) float64 {
	if loc == nil {
		loc = time.Local
	}
	s := since.In(loc)
	dayStart := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)

	var total float64
	for _, c := range collections {
		if !c.Timestamp.In(loc).Before(dayStart) {
			total += c.Amount
		}
	}
	return total
}

// ---------------------------------------------------------------------------
// Fan-out aggregation
// ---------------------------------------------------------------------------

// CollectAccountLedgers fetches every account's movements concurrently and
// joins the results all-settled. Within one account, collections come back
// sorted most recent first; no ordering holds between accounts. When some
// sub-fetches failed the aggregate is still returned together with a
// *domain.PartialAggregationError naming the failed sources.
func (s *AggregatorService) CollectAccountLedgers(ctx context.Context, accountNumbers []string) (ports.LedgerAggregate, error) {
	agg := s.collectLedgers(ctx, accountNumbers)
	if len(agg.Failures) > 0 {
		return agg, &domain.PartialAggregationError{Failures: agg.Failures}
	}
	return agg, nil
}

func (s *AggregatorService) collectLedgers(ctx context.Context, accountNumbers []string) ports.LedgerAggregate {
	type settled struct {
		ledger  ports.AccountLedger
		failure *domain.SourceFailure
	}

	results := make([]settled, len(accountNumbers))
	var wg sync.WaitGroup
	for i, number := range accountNumbers {
		wg.Add(1)
		go func(i int, number string) {
			defer wg.Done()

			cols, err := s.collections.ListByAccount(ctx, number)
			if err != nil {
				results[i] = settled{failure: &domain.SourceFailure{AccountNumber: number, Reason: err.Error()}}
				return
			}
			wdls, err := s.withdrawals.ListByAccount(ctx, number)
			if err != nil {
				results[i] = settled{failure: &domain.SourceFailure{AccountNumber: number, Reason: err.Error()}}
				return
			}

			sort.Slice(cols, func(a, b int) bool {
				return cols[a].Timestamp.After(cols[b].Timestamp)
			})
			results[i] = settled{ledger: ports.AccountLedger{
				AccountNumber: number,
				Collections:   cols,
				Withdrawals:   wdls,
			}}
		}(i, number)
	}
	wg.Wait()

	var agg ports.LedgerAggregate
	for _, r := range results {
		if r.failure != nil {
			s.log.Warn().Str("account", r.failure.AccountNumber).Str("reason", r.failure.Reason).Msg("ledger fetch failed")
			agg.Failures = append(agg.Failures, *r.failure)
			continue
		}
		agg.Ledgers = append(agg.Ledgers, r.ledger)
		for _, c := range r.ledger.Collections {
			agg.CollectionTotal += c.Amount
		}
	}
	return agg
}

// ---------------------------------------------------------------------------
// View models
// ---------------------------------------------------------------------------

// AgentDashboard builds the agent landing view. Statistics come from the
// store's pre-aggregated read; when that fails they are recomputed from the
// raw ledger as a fallback rather than erroring the whole page.
func (s *AggregatorService) AgentDashboard(ctx context.Context, p domain.Principal, loc *time.Location) (*ports.AgentDashboard, error) {
	if loc == nil {
		loc = time.Local
	}

	gen := s.guard(p.Identity.UserID).Begin()

	agent, err := s.identity.ResolveAgent(ctx, p)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	monthCollections, err := s.collections.ListByAgentSince(ctx, agent.ID, monthStart)
	if err != nil {
		return nil, err
	}
	sort.Slice(monthCollections, func(a, b int) bool {
		return monthCollections[a].Timestamp.After(monthCollections[b].Timestamp)
	})

	stats, source := s.agentStatistics(ctx, agent.ID, monthStart, monthCollections)

	recent := monthCollections
	if len(recent) > recentCollectionsLimit {
		recent = recent[:recentCollectionsLimit]
	}

	dash := &ports.AgentDashboard{
		Agent:          *agent,
		Statistics:     stats,
		ObjectiveRate:  ComputeObjectiveRate(stats.CollectedMonth, agent.MonthlyObjectiveAmount),
		TodayTotal:     PeriodTotal(monthCollections, now, loc),
		Recent:         recent,
		StatisticsFrom: source,
	}

	s.commit(p.Identity.UserID, gen, dash)
	return dash, nil
}

// agentStatistics prefers the store's pre-aggregated figures and falls back
// to a client-side recomputation from the month's ledger.
func (s *AggregatorService) agentStatistics(ctx context.Context, agentID string, monthStart time.Time, monthCollections []domain.Collection) (domain.AgentStatistics, string) {
	if stats, err := s.agents.Statistics(ctx, agentID, monthStart); err == nil {
		return *stats, "store"
	} else {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("statistics read failed, recomputing from ledger")
	}

	stats := domain.AgentStatistics{AgentID: agentID}
	seen := make(map[string]struct{})
	for _, c := range monthCollections {
		stats.CollectedMonth += c.Amount
		stats.CollectedTotal += c.Amount
		stats.CollectionCount++
		seen[c.AccountNumber] = struct{}{}
	}
	stats.CommercantsCount = int64(len(seen))
	return stats, "recomputed"
}

// CommercantSummary builds the client view: accounts summary, merged ledgers
// from the all-settled fan-out, and a reconciliation discrepancy for any
// account whose reported balance disagrees with its recomputed ledger sum.
func (s *AggregatorService) CommercantSummary(ctx context.Context, p domain.Principal) (*ports.CommercantSummary, error) {
	gen := s.guard(p.Identity.UserID).Begin()

	commercant, err := s.identity.ResolveCommercant(ctx, p)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListByOwner(ctx, commercant.ID)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, len(accounts))
	byNumber := make(map[string]domain.Account, len(accounts))
	for i, a := range accounts {
		numbers[i] = a.AccountNumber
		byNumber[a.AccountNumber] = a
	}

	agg := s.collectLedgers(ctx, numbers)

	summary := &ports.CommercantSummary{
		Commercant: *commercant,
		Accounts:   accounts,
		Summary:    SummarizeAccounts(accounts),
		Failures:   agg.Failures,
	}
	for _, ledger := range agg.Ledgers {
		summary.Collections = append(summary.Collections, ledger.Collections...)
		summary.Withdrawals = append(summary.Withdrawals, ledger.Withdrawals...)
		if d := domain.ReconcileBalance(byNumber[ledger.AccountNumber], ledger.Collections, ledger.Withdrawals); d != nil {
			s.log.Warn().
				Str("account", d.AccountNumber).
				Float64("reported", d.Reported).
				Float64("recomputed", d.Recomputed).
				Msg("balance discrepancy")
			summary.Discrepancies = append(summary.Discrepancies, *d)
		}
	}

	s.commit(p.Identity.UserID, gen, summary)
	return summary, nil
}

// ---------------------------------------------------------------------------
// Load-generation bookkeeping
// ---------------------------------------------------------------------------

func (s *AggregatorService) guard(userID string) *LoadGuard {
	g, _ := s.guards.LoadOrStore(userID, &LoadGuard{})
	return g.(*LoadGuard)
}

// commit stores the view snapshot only when no newer load has started; a
// stale load's result is discarded rather than applied.
func (s *AggregatorService) commit(userID string, gen uint64, view any) {
	if !s.guard(userID).Current(gen) {
		s.log.Debug().Str("user_id", userID).Uint64("generation", gen).Msg("stale load discarded")
		return
	}
	s.snapshots.Store(userID, view)
}

// LastSnapshot returns the most recently committed view for a user, if any.
func (s *AggregatorService) LastSnapshot(userID string) (any, bool) {
	return s.snapshots.Load(userID)
}
