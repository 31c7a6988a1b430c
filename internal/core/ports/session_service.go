package ports

import (
	"context"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token        string
	Role         domain.Role
	LandingRoute domain.RouteId
	Principal    domain.Principal
}

// SessionService owns the Principal lifecycle: it is the only writer of the
// session store.
type SessionService interface {
	// Login authenticates credentials, normalizes the role (fail-closed on
	// unknown roles), issues a token and durably saves the Principal. A save
	// that cannot be verified surfaces domain.ErrPersistence and the caller
	// must not navigate as logged in.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout clears the stored session. Clearing an absent session is not an
	// error.
	Logout(ctx context.Context, token string) error

	// CurrentPrincipal reads the session for a token; domain.ErrSessionAbsent
	// when none.
	CurrentPrincipal(ctx context.Context, token string) (*domain.Principal, error)
}
