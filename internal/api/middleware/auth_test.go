package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

const testSecret = "test-secret"

type stubSessionService struct {
	principals map[string]*domain.Principal
}

func newStubSessionService() *stubSessionService {
	return &stubSessionService{principals: make(map[string]*domain.Principal)}
}

func (s *stubSessionService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, nil
}

func (s *stubSessionService) Logout(_ context.Context, token string) error {
	delete(s.principals, token)
	return nil
}

func (s *stubSessionService) CurrentPrincipal(_ context.Context, token string) (*domain.Principal, error) {
	p, ok := s.principals[token]
	if !ok {
		return nil, domain.ErrSessionAbsent
	}
	clone := *p
	return &clone, nil
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func invokeAuth(t *testing.T, sessions ports.SessionService, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/agent/dashboard", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(testSecret, sessions)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", httpErr.Code)
	}
	body, ok := httpErr.Message.(map[string]string)
	if !ok {
		t.Fatalf("unexpected message type: %T", httpErr.Message)
	}
	if body["redirect"] != string(domain.RouteLogin) {
		t.Fatalf("redirect = %q, want login route", body["redirect"])
	}
}

func TestAuth_ValidTokenAndSession(t *testing.T) {
	token := signedToken(t, testSecret)
	sessions := newStubSessionService()
	sessions.principals[token] = &domain.Principal{
		Token:   token,
		RawRole: "AGENT",
		Identity: domain.IdentitySnapshot{
			UserID:  "u1",
			AgentID: "ag_1",
		},
	}

	c, err := invokeAuth(t, sessions, "Bearer "+token)
	if err != nil {
		t.Fatalf("auth failed: %v", err)
	}

	p, ok := CtxPrincipal(c)
	if !ok {
		t.Fatalf("principal not attached to context")
	}
	if p.Identity.AgentID != "ag_1" {
		t.Fatalf("principal = %+v", p)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invokeAuth(t, newStubSessionService(), "")
	assertUnauthenticated(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := invokeAuth(t, newStubSessionService(), "Token abc")
	assertUnauthenticated(t, err)
}

func TestAuth_WrongSignature(t *testing.T) {
	token := signedToken(t, "another-secret")
	_, err := invokeAuth(t, newStubSessionService(), "Bearer "+token)
	assertUnauthenticated(t, err)
}

func TestAuth_ValidTokenClearedSession(t *testing.T) {
	// Token verifies but logout already removed the session: must be treated
	// as unauthenticated, not let through on the JWT alone.
	token := signedToken(t, testSecret)
	_, err := invokeAuth(t, newStubSessionService(), "Bearer "+token)
	assertUnauthenticated(t, err)
}
