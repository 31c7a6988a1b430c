package ports

import (
	"context"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// RecordCollectionInput carries everything needed to append a deposit.
type RecordCollectionInput struct {
	AccountNumber string
	AgentID       string
	Amount        float64
	PaymentMode   string
	ProofURL      string
}

// RecordWithdrawalInput carries everything needed to append a withdrawal.
type RecordWithdrawalInput struct {
	AccountNumber string
	Amount        float64
	Reason        string
}

// LedgerService appends to the movement ledgers. Entries are append-only:
// created and read, never mutated.
type LedgerService interface {
	RecordCollection(ctx context.Context, in RecordCollectionInput) (*domain.Collection, error)
	RecordWithdrawal(ctx context.Context, in RecordWithdrawalInput) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, commercantID string) ([]domain.Withdrawal, error)
}
