package ports

import (
	"context"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// KycListing is a filtered view plus tallies computed from the full set, so
// the counts shown next to filter tabs never drift from the filtered rows.
type KycListing struct {
	Records []domain.KycRecord      `json:"records"`
	Counts  map[domain.KycState]int `json:"counts"`
	Total   int                     `json:"total"`
}

// KycService governs the document-verification workflow.
type KycService interface {
	// List returns records filtered by state (zero state = ALL) with
	// filter-independent counts.
	List(ctx context.Context, state domain.KycState) (*KycListing, error)

	// Decide applies APPROVED or REJECTED to a PENDING record, stamping the
	// validation timestamp and optional comment. A non-pending record fails
	// with domain.ErrInvalidTransition and is left unchanged; a decision
	// outside the terminal pair fails with domain.ErrInvalidDecision.
	Decide(ctx context.Context, recordID string, decision domain.KycState, comment string) (*domain.KycRecord, error)
}
