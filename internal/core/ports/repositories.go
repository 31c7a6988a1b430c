package ports

import (
	"context"
	"time"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// UserRepository defines the interface for credential lookups.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AgentRepository reads agent records. The store owns them; the core only
// reads.
type AgentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Agent, error)
	// Statistics returns the store's pre-aggregated per-agent figures. Callers
	// fall back to client-side recomputation when this read fails.
	Statistics(ctx context.Context, agentID string, monthStart time.Time) (*domain.AgentStatistics, error)
}

// CommercantRepository reads merchant records.
type CommercantRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Commercant, error)
	// FindByUserID is the "my profile" lookup used when the identity snapshot
	// carries no commerçant id.
	FindByUserID(ctx context.Context, userID string) (*domain.Commercant, error)
}

// AccountRepository reads savings accounts.
type AccountRepository interface {
	ListByOwner(ctx context.Context, commercantID string) ([]domain.Account, error)
	FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
}

// CollectionRepository persists and reads the append-only deposit ledger.
type CollectionRepository interface {
	Create(ctx context.Context, c *domain.Collection) error
	ListByAccount(ctx context.Context, accountNumber string) ([]domain.Collection, error)
	ListByAgentSince(ctx context.Context, agentID string, since time.Time) ([]domain.Collection, error)
}

// WithdrawalRepository persists and reads the append-only withdrawal ledger.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	ListByAccount(ctx context.Context, accountNumber string) ([]domain.Withdrawal, error)
	ListByOwner(ctx context.Context, commercantID string) ([]domain.Withdrawal, error)
}

// KycRepository persists verification records. State transitions go through
// the domain state machine before any write is issued.
type KycRepository interface {
	FindByID(ctx context.Context, id string) (*domain.KycRecord, error)
	List(ctx context.Context) ([]domain.KycRecord, error)
	Create(ctx context.Context, r *domain.KycRecord) error
	// UpdateDecision writes an already-validated decision.
	UpdateDecision(ctx context.Context, r *domain.KycRecord) error
}

// InstitutionRepository manages tenant institutions (super-admin console).
type InstitutionRepository interface {
	List(ctx context.Context) ([]domain.Institution, error)
	Create(ctx context.Context, i *domain.Institution) error
}
