package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// RBAC enforces role-based access control on top of the Principal attached by
// Auth. The raw role is normalized on every request (stored casing is not
// trusted); an unrecognized role fails closed with 401 rather than falling
// through to any default role. A denied response carries the landing route of
// the actual role so the caller redirects instead of rendering.
func RBAC(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := CtxPrincipal(c)
			if !ok {
				return unauthenticated("missing authentication claims")
			}

			role, err := principal.Role()
			if err != nil {
				return unauthenticated("unrecognized role")
			}

			if decision := domain.Authorize(role, required...); !decision.Allowed {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "forbidden",
					"redirect": string(decision.Redirect),
				})
			}
			return next(c)
		}
	}
}
