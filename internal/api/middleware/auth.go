package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// Auth validates the bearer token and attaches the stored Principal to the
// request context. Two checks, both mandatory: the JWT must verify, and the
// session must still exist in the store — a valid token whose session was
// cleared (logout, corruption) is treated as absent and redirected to login.
func Auth(jwtSecret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthenticated("invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return unauthenticated("invalid token")
			}

			principal, err := sessions.CurrentPrincipal(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrSessionAbsent) || errors.Is(err, domain.ErrUnknownRole) {
					return unauthenticated("session expired")
				}
				return err
			}

			c.Set("principal", *principal)
			return next(c)
		}
	}
}

// unauthenticated builds the 401 response; the redirect field always points
// at the login entry point — the session-absent case never reaches an
// authorization check.
func unauthenticated(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
		"error":    msg,
		"redirect": string(domain.RouteLogin),
	})
}

// CtxPrincipal extracts the Principal attached by Auth.
func CtxPrincipal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get("principal").(domain.Principal)
	return p, ok
}
