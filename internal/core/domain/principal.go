package domain

// IdentitySnapshot is the denormalized identity captured at login time. It may
// be incomplete — the domain-entity ids are optional and the Identity Linker
// resolves the gap through a secondary lookup instead of guessing.
type IdentitySnapshot struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name,omitempty"`
	Email         string `json:"email,omitempty"`
	AgentID       string `json:"agent_id,omitempty"`
	CommercantID  string `json:"commercant_id,omitempty"`
	InstitutionID string `json:"institution_id,omitempty"`
}

// Principal is the authenticated session identity. It is owned exclusively by
// the session store: written only by the login/logout flows, read everywhere
// else. RawRole keeps whatever casing the entry point produced; Role()
// recomputes the canonical role on every read.
type Principal struct {
	Token    string           `json:"token"`
	RawRole  string           `json:"raw_role"`
	Identity IdentitySnapshot `json:"identity"`
}

// Role normalizes the stored raw role. Fails closed on anything outside the
// canonical set.
func (p Principal) Role() (Role, error) {
	return NormalizeRole(p.RawRole)
}
