package ports

import (
	"context"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// SessionStore is durable storage for the Principal with an explicit
// lifecycle. It is the only mutable shared state in the core: written solely
// by the login/logout flows, read everywhere else.
type SessionStore interface {
	// Save persists the whole Principal atomically — a reader must never
	// observe a token without its accompanying role. Implementations verify
	// the write by read-back and return domain.ErrPersistence when the stored
	// value cannot be confirmed; the caller must not proceed as logged in.
	Save(ctx context.Context, p domain.Principal) error

	// Read returns the Principal for a token, or domain.ErrSessionAbsent.
	// Idempotent and side-effect-free.
	Read(ctx context.Context, token string) (*domain.Principal, error)

	// Clear removes the session. Used on logout and on detecting a corrupted
	// stored value.
	Clear(ctx context.Context, token string) error
}
