package domain

import "time"

// User models a login credential record. RawRole is stored exactly as
// received — historical entry points wrote mixed casings — and is normalized
// on every read via NormalizeRole.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	RawRole       string    `json:"role"`
	AgentID       string    `json:"agent_id,omitempty"`
	CommercantID  string    `json:"commercant_id,omitempty"`
	InstitutionID string    `json:"institution_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
