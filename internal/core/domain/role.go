package domain

import "strings"

// Role is a canonical, normalized role. Raw role strings arrive with
// inconsistent casing depending on the login entry point ("agent", "AGENT",
// "Commercant"), so a Role is always derived through Normalize and never
// trusted as stored.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAgent      Role = "AGENT"
	RoleCommercant Role = "COMMERCANT"
	RoleCaisse     Role = "CAISSE"
	RoleAdjoint    Role = "ADJOINT"
)

// RouteId identifies a landing route on the presentation side.
type RouteId string

const (
	RouteLogin           RouteId = "/login"
	RouteAgentDashboard  RouteId = "/agent/dashboard"
	RouteClientDashboard RouteId = "/client/dashboard"
	RouteAdminDashboard  RouteId = "/admin/dashboard"
	RouteCaisseRetraits  RouteId = "/caisse/retraits"
	RouteSuperAdmin      RouteId = "/superadmin/console"
)

var canonicalRoles = map[Role]struct{}{
	RoleAdmin:      {},
	RoleSuperAdmin: {},
	RoleAgent:      {},
	RoleCommercant: {},
	RoleCaisse:     {},
	RoleAdjoint:    {},
}

// NormalizeRole maps a raw role string to its canonical role. Matching is
// case-insensitive; anything outside the canonical set fails closed with
// ErrUnknownRole rather than defaulting to a privileged role.
func NormalizeRole(raw string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := canonicalRoles[r]; !ok {
		return "", ErrUnknownRole
	}
	return r, nil
}

// LandingRoute returns the dashboard route for a canonical role. An
// unrecognized role falls back to the admin dashboard; that fallback is a
// defensive default for display routing only, never an authorization result —
// callers that need a security decision go through Authorize.
func LandingRoute(role Role) RouteId {
	switch role {
	case RoleAgent:
		return RouteAgentDashboard
	case RoleCommercant:
		return RouteClientDashboard
	case RoleCaisse:
		return RouteCaisseRetraits
	case RoleSuperAdmin:
		return RouteSuperAdmin
	case RoleAdmin, RoleAdjoint:
		return RouteAdminDashboard
	default:
		return RouteAdminDashboard
	}
}

// AccessDecision is the result of an authorization check. When Allowed is
// false, Redirect carries the landing route of the actual role so the caller
// redirects instead of rendering.
type AccessDecision struct {
	Allowed  bool
	Redirect RouteId
}

// Authorize reports whether role is in the required set. Pure; it assumes the
// session-absent case has already been handled (absence always redirects to
// the login entry point before any authorization check).
func Authorize(role Role, required ...Role) AccessDecision {
	for _, r := range required {
		if role == r {
			return AccessDecision{Allowed: true}
		}
	}
	return AccessDecision{Allowed: false, Redirect: LandingRoute(role)}
}
