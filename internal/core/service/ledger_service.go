package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// LedgerService appends movements to the ledgers. Entries are created and
// read, never mutated.
type LedgerService struct {
	accounts    ports.AccountRepository
	collections ports.CollectionRepository
	withdrawals ports.WithdrawalRepository
	log         zerolog.Logger
}

func NewLedgerService(
	accounts ports.AccountRepository,
	collections ports.CollectionRepository,
	withdrawals ports.WithdrawalRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{accounts: accounts, collections: collections, withdrawals: withdrawals, log: log}
}

// RecordCollection appends a deposit. The target account must exist and the
// amount must be strictly positive.
func (s *LedgerService) RecordCollection(ctx context.Context, in ports.RecordCollectionInput) (*domain.Collection, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("record collection: amount must be positive")
	}
	if _, err := s.accounts.FindByNumber(ctx, in.AccountNumber); err != nil {
		return nil, err
	}

	c := &domain.Collection{
		ID:            uuid.NewString(),
		AccountNumber: in.AccountNumber,
		AgentID:       in.AgentID,
		Amount:        in.Amount,
		Timestamp:     time.Now().UTC(),
		PaymentMode:   in.PaymentMode,
		ProofURL:      in.ProofURL,
	}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account", c.AccountNumber).
		Str("agent_id", c.AgentID).
		Float64("amount", c.Amount).
		Msg("collection recorded")
	return c, nil
}

// RecordWithdrawal appends a withdrawal against an existing account.
func (s *LedgerService) RecordWithdrawal(ctx context.Context, in ports.RecordWithdrawalInput) (*domain.Withdrawal, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("record withdrawal: amount must be positive")
	}
	if _, err := s.accounts.FindByNumber(ctx, in.AccountNumber); err != nil {
		return nil, err
	}

	w := &domain.Withdrawal{
		ID:            uuid.NewString(),
		AccountNumber: in.AccountNumber,
		Amount:        in.Amount,
		Timestamp:     time.Now().UTC(),
		Reason:        in.Reason,
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		return nil, err
	}

	s.log.Info().Str("account", w.AccountNumber).Float64("amount", w.Amount).Msg("withdrawal recorded")
	return w, nil
}

// ListWithdrawals returns a commerçant's withdrawal history.
func (s *LedgerService) ListWithdrawals(ctx context.Context, commercantID string) ([]domain.Withdrawal, error) {
	return s.withdrawals.ListByOwner(ctx, commercantID)
}
