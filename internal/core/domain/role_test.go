package domain

import (
	"errors"
	"testing"
)

func TestNormalizeRole_CaseInsensitive(t *testing.T) {
	cases := map[string]Role{
		"agent":        RoleAgent,
		"AGENT":        RoleAgent,
		"Agent":        RoleAgent,
		"commercant":   RoleCommercant,
		"Commercant":   RoleCommercant,
		"COMMERCANT":   RoleCommercant,
		"admin":        RoleAdmin,
		"superadmin":   RoleSuperAdmin,
		"SuperAdmin":   RoleSuperAdmin,
		"caisse":       RoleCaisse,
		"adjoint":      RoleAdjoint,
		"  agent  ":    RoleAgent,
		"\tCAISSE\n":   RoleCaisse,
		"ADJOINT":      RoleAdjoint,
		"SUPERADMIN":   RoleSuperAdmin,
		"COMMERCANT ":  RoleCommercant,
		" superadmin ": RoleSuperAdmin,
	}

	for raw, want := range cases {
		got, err := NormalizeRole(raw)
		if err != nil {
			t.Fatalf("NormalizeRole(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("NormalizeRole(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestNormalizeRole_FailsClosed(t *testing.T) {
	for _, raw := range []string{"", "root", "administrator", "agent2", "commerçant", "  ", "ADMIN "} {
		raw := raw
		if raw == "ADMIN " {
			continue // trimmed input is valid by design
		}
		if _, err := NormalizeRole(raw); !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("NormalizeRole(%q): expected ErrUnknownRole, got %v", raw, err)
		}
	}
}

func TestLandingRoute(t *testing.T) {
	cases := map[Role]RouteId{
		RoleAgent:      RouteAgentDashboard,
		RoleCommercant: RouteClientDashboard,
		RoleAdmin:      RouteAdminDashboard,
		RoleAdjoint:    RouteAdminDashboard,
		RoleCaisse:     RouteCaisseRetraits,
		RoleSuperAdmin: RouteSuperAdmin,
	}
	for role, want := range cases {
		if got := LandingRoute(role); got != want {
			t.Fatalf("LandingRoute(%s) = %s, want %s", role, got, want)
		}
	}

	// Defensive fallback for display routing only, never a security boundary.
	if got := LandingRoute(Role("bogus")); got != RouteAdminDashboard {
		t.Fatalf("LandingRoute fallback = %s, want %s", got, RouteAdminDashboard)
	}
}

func TestAuthorize(t *testing.T) {
	if d := Authorize(RoleAgent, RoleAgent, RoleAdmin); !d.Allowed {
		t.Fatalf("expected agent allowed, got denied with redirect %s", d.Redirect)
	}

	d := Authorize(RoleCommercant, RoleAdmin, RoleAdjoint)
	if d.Allowed {
		t.Fatalf("expected commercant denied")
	}
	if d.Redirect != RouteClientDashboard {
		t.Fatalf("denied redirect = %s, want the actual role's landing route %s", d.Redirect, RouteClientDashboard)
	}
}

func TestAuthorize_EmptyRequired(t *testing.T) {
	if d := Authorize(RoleAdmin); d.Allowed {
		t.Fatalf("empty required set must deny")
	}
}
