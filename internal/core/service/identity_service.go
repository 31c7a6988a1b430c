package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// IdentityService resolves a Principal to its domain entity. The identity
// snapshot stored at login may be incomplete; resolution goes through the
// repositories and never fabricates a default identity.
type IdentityService struct {
	agents      ports.AgentRepository
	commercants ports.CommercantRepository
	log         zerolog.Logger
}

func NewIdentityService(agents ports.AgentRepository, commercants ports.CommercantRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{agents: agents, commercants: commercants, log: log}
}

// ResolveAgent fetches the Agent embedded in the snapshot. A snapshot without
// an agent id fails with ErrIdentityMissing; a repository error is returned
// as-is so transient failures stay visible to the caller.
func (s *IdentityService) ResolveAgent(ctx context.Context, p domain.Principal) (*domain.Agent, error) {
	if p.Identity.AgentID == "" {
		s.log.Warn().Str("user_id", p.Identity.UserID).Msg("principal has no agent id")
		return nil, domain.ErrIdentityMissing
	}
	return s.agents.FindByID(ctx, p.Identity.AgentID)
}

// ResolveCommercant fetches the Commerçant embedded in the snapshot, falling
// back to the profile lookup by user id when no id is embedded.
func (s *IdentityService) ResolveCommercant(ctx context.Context, p domain.Principal) (*domain.Commercant, error) {
	if p.Identity.CommercantID != "" {
		return s.commercants.FindByID(ctx, p.Identity.CommercantID)
	}
	if p.Identity.UserID == "" {
		return nil, domain.ErrIdentityMissing
	}
	return s.commercants.FindByUserID(ctx, p.Identity.UserID)
}
