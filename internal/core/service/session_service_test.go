package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(email, password, rawRole string, snapshot domain.IdentitySnapshot) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.users[email] = &domain.User{
		ID:           "user_" + email,
		Email:        email,
		PasswordHash: string(hash),
		RawRole:      rawRole,
		AgentID:      snapshot.AgentID,
		CommercantID: snapshot.CommercantID,
	}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// memSessionStore mirrors the Redis store's contract: whole-principal values,
// verified saves (failSave simulates an unverifiable write).
type memSessionStore struct {
	sessions map[string]domain.Principal
	failSave bool
	saves    int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Principal)}
}

func (s *memSessionStore) Save(_ context.Context, p domain.Principal) error {
	s.saves++
	if s.failSave {
		return domain.ErrPersistence
	}
	s.sessions[p.Token] = p
	return nil
}

func (s *memSessionStore) Read(_ context.Context, token string) (*domain.Principal, error) {
	p, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionAbsent
	}
	return &p, nil
}

func (s *memSessionStore) Clear(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newSessionServiceForTest(users *stubUserRepo, sessions *memSessionStore) *SessionService {
	return NewSessionService(users, sessions, "secret", time.Hour, zerolog.Nop())
}

func TestSessionService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	users.add("alice@reseau.cm", "s3cret", "Agent", domain.IdentitySnapshot{AgentID: "ag_1"})
	sessions := newMemSessionStore()
	svc := newSessionServiceForTest(users, sessions)

	result, err := svc.Login(context.Background(), "alice@reseau.cm", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != domain.RoleAgent {
		t.Fatalf("role = %s, want AGENT", result.Role)
	}
	if result.LandingRoute != domain.RouteAgentDashboard {
		t.Fatalf("landing route = %s", result.LandingRoute)
	}
	if result.Principal.Identity.AgentID != "ag_1" {
		t.Fatalf("snapshot missing agent id: %+v", result.Principal.Identity)
	}

	// The token is a verifiable JWT carrying the raw role.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "Agent" {
		t.Fatalf("token role = %v, want stored raw casing", claims["role"])
	}

	// The session is durably saved and readable as a whole principal.
	stored, err := sessions.Read(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("session not saved: %v", err)
	}
	if stored.RawRole != "Agent" || stored.Token != result.Token {
		t.Fatalf("torn session: %+v", stored)
	}
}

func TestSessionService_Login_InvalidPassword(t *testing.T) {
	users := newStubUserRepo()
	users.add("bob@reseau.cm", "goodpass", "agent", domain.IdentitySnapshot{})
	svc := newSessionServiceForTest(users, newMemSessionStore())

	if _, err := svc.Login(context.Background(), "bob@reseau.cm", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_UnknownRoleFailsClosed(t *testing.T) {
	users := newStubUserRepo()
	users.add("eve@reseau.cm", "pass", "superuser", domain.IdentitySnapshot{})
	sessions := newMemSessionStore()
	svc := newSessionServiceForTest(users, sessions)

	_, err := svc.Login(context.Background(), "eve@reseau.cm", "pass")
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if sessions.saves != 0 {
		t.Fatalf("no session may be saved for an unrecognized role")
	}
}

func TestSessionService_Login_UnverifiedSaveBlocksLogin(t *testing.T) {
	users := newStubUserRepo()
	users.add("carol@reseau.cm", "pass", "CAISSE", domain.IdentitySnapshot{})
	sessions := newMemSessionStore()
	sessions.failSave = true
	svc := newSessionServiceForTest(users, sessions)

	result, err := svc.Login(context.Background(), "carol@reseau.cm", "pass")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if result != nil {
		t.Fatalf("caller must not receive a token on an unverified save")
	}
}

func TestSessionService_Logout_AbsentSessionIsNoError(t *testing.T) {
	svc := newSessionServiceForTest(newStubUserRepo(), newMemSessionStore())
	if err := svc.Logout(context.Background(), "missing-token"); err != nil {
		t.Fatalf("logout of absent session: %v", err)
	}
}

func TestSessionService_CurrentPrincipal(t *testing.T) {
	users := newStubUserRepo()
	users.add("dora@reseau.cm", "pass", "commercant", domain.IdentitySnapshot{CommercantID: "cm_9"})
	sessions := newMemSessionStore()
	svc := newSessionServiceForTest(users, sessions)

	result, err := svc.Login(context.Background(), "dora@reseau.cm", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	p, err := svc.CurrentPrincipal(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	role, err := p.Role()
	if err != nil || role != domain.RoleCommercant {
		t.Fatalf("role = %v (%v)", role, err)
	}

	if _, err := svc.CurrentPrincipal(context.Background(), "other-token"); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Fatalf("expected ErrSessionAbsent, got %v", err)
	}
}

func TestSessionService_CurrentPrincipal_ClearsCorruptedRole(t *testing.T) {
	sessions := newMemSessionStore()
	sessions.sessions["tok"] = domain.Principal{Token: "tok", RawRole: "intruder"}
	svc := newSessionServiceForTest(newStubUserRepo(), sessions)

	if _, err := svc.CurrentPrincipal(context.Background(), "tok"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, ok := sessions.sessions["tok"]; ok {
		t.Fatalf("corrupted session must be cleared")
	}
}
