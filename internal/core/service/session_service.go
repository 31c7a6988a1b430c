package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// SessionService implements login, logout and session reads. It is the sole
// writer of the session store.
type SessionService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewSessionService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login authenticates the credentials and persists the Principal. The role is
// normalized before anything else: an unrecognized role string fails closed
// with ErrUnknownRole, never a default privileged role. When the session save
// cannot be verified, the error is surfaced and no token is returned — the
// caller must not navigate as if logged in.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	role, err := domain.NormalizeRole(user.RawRole)
	if err != nil {
		s.log.Warn().Str("email", email).Str("raw_role", user.RawRole).Msg("login rejected: unrecognized role")
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	principal := domain.Principal{
		Token:   token,
		RawRole: user.RawRole,
		Identity: domain.IdentitySnapshot{
			UserID:        user.ID,
			Email:         user.Email,
			AgentID:       user.AgentID,
			CommercantID:  user.CommercantID,
			InstitutionID: user.InstitutionID,
		},
	}

	if err := s.sessions.Save(ctx, principal); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("session save not verified")
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", string(role)).Msg("login")

	return &ports.LoginResult{
		Token:        token,
		Role:         role,
		LandingRoute: domain.LandingRoute(role),
		Principal:    principal,
	}, nil
}

// Logout clears the stored session. An already-absent session is treated as a
// successful logout.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Clear(ctx, token); err != nil && !errors.Is(err, domain.ErrSessionAbsent) {
		return err
	}
	return nil
}

// CurrentPrincipal reads the session. A stored principal whose raw role no
// longer normalizes is treated as corrupted: the session is cleared and the
// read fails closed.
func (s *SessionService) CurrentPrincipal(ctx context.Context, token string) (*domain.Principal, error) {
	p, err := s.sessions.Read(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := p.Role(); err != nil {
		s.log.Warn().Str("raw_role", p.RawRole).Msg("clearing session with unrecognized role")
		_ = s.sessions.Clear(ctx, token)
		return nil, err
	}
	return p, nil
}

func (s *SessionService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.RawRole,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
