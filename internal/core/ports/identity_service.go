package ports

import (
	"context"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// IdentityService resolves the Principal to its domain entity when the
// identity snapshot stored at login time is incomplete. Resolution is
// read-only and safely retryable; transient lookup failures are returned to
// the caller, never masked as "no entity".
type IdentityService interface {
	// ResolveAgent returns the Agent for the snapshot's agent id, or
	// domain.ErrIdentityMissing when the snapshot embeds none (it never
	// guesses).
	ResolveAgent(ctx context.Context, p domain.Principal) (*domain.Agent, error)

	// ResolveCommercant returns the Commerçant for the snapshot's id, falling
	// back to the profile lookup by user id when none is embedded.
	ResolveCommercant(ctx context.Context, p domain.Principal) (*domain.Commercant, error)
}
