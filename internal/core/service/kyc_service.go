package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// KycService governs the document-verification workflow. The state machine
// lives in the domain; this service refuses illegal decisions before any
// write reaches the repository.
type KycService struct {
	repo ports.KycRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewKycService(repo ports.KycRepository, log zerolog.Logger) *KycService {
	return &KycService{repo: repo, log: log, now: time.Now}
}

// List returns records filtered by state. Counts are always tallied from the
// full unfiltered set so the numbers next to filter tabs never drift from the
// filtered rows.
func (s *KycService) List(ctx context.Context, state domain.KycState) (*ports.KycListing, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.KycListing{
		Records: domain.FilterKycByState(records, state),
		Counts:  domain.CountKycByState(records),
		Total:   len(records),
	}, nil
}

// Decide applies a decision to a PENDING record and delegates the write. A
// record already in a terminal state fails with ErrInvalidTransition and
// nothing is written; a decision outside {APPROVED, REJECTED} fails with
// ErrInvalidDecision.
func (s *KycService) Decide(ctx context.Context, recordID string, decision domain.KycState, comment string) (*domain.KycRecord, error) {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	decided, err := record.Decide(decision, comment, s.now().UTC())
	if err != nil {
		s.log.Warn().
			Str("kyc_id", recordID).
			Str("state", string(record.State)).
			Str("decision", string(decision)).
			Msg("kyc decision refused")
		return nil, err
	}

	if err := s.repo.UpdateDecision(ctx, &decided); err != nil {
		return nil, err
	}

	s.log.Info().Str("kyc_id", recordID).Str("decision", string(decision)).Msg("kyc decided")
	return &decided, nil
}
