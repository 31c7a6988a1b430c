package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownRole = errors.New("unknown role")
var ErrPersistence = errors.New("session write could not be verified")
var ErrSessionAbsent = errors.New("no active session")
var ErrIdentityMissing = errors.New("principal has no linkable identity")
var ErrInvalidTransition = errors.New("invalid kyc state transition")
var ErrInvalidDecision = errors.New("invalid kyc decision")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrAgentNotFound = errors.New("agent not found")
var ErrCommercantNotFound = errors.New("commercant not found")
var ErrAccountNotFound = errors.New("account not found")
var ErrKycNotFound = errors.New("kyc record not found")
var ErrInstitutionExists = errors.New("institution already exists")

// SourceFailure records one failed sub-fetch during a fan-out aggregation.
type SourceFailure struct {
	AccountNumber string `json:"account_number"`
	Reason        string `json:"reason"`
}

// PartialAggregationError reports that one or more per-account fetches failed
// while the rest succeeded. The partial total is still usable; callers must
// show the failures rather than fold them silently into the total.
type PartialAggregationError struct {
	Failures []SourceFailure
}

func (e *PartialAggregationError) Error() string {
	return fmt.Sprintf("aggregation incomplete: %d source(s) failed", len(e.Failures))
}
