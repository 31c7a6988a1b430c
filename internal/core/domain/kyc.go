package domain

import "time"

// KycState represents the verification state of a KYC document record.
type KycState string

const (
	KycPending  KycState = "PENDING"
	KycApproved KycState = "APPROVED"
	KycRejected KycState = "REJECTED"
)

// validKycTransitions defines the allowed state machine transitions. Approved
// and rejected are terminal.
var validKycTransitions = map[KycState][]KycState{
	KycPending: {KycApproved, KycRejected},
}

// CanTransitionTo reports whether a transition from the current state to next
// is valid.
func (s KycState) CanTransitionTo(next KycState) bool {
	for _, allowed := range validKycTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves this state.
func (s KycState) Terminal() bool {
	return len(validKycTransitions[s]) == 0
}

// KycRecord is a merchant identity-verification document awaiting or having
// received a decision.
type KycRecord struct {
	ID                  string     `json:"id" bson:"_id,omitempty"`
	CommercantID        string     `json:"commercant_id" bson:"commercant_id"`
	DocumentType        string     `json:"document_type" bson:"document_type"`
	DocumentNumber      string     `json:"document_number" bson:"document_number"`
	FrontPhotoURL       string     `json:"front_photo_url" bson:"front_photo_url"`
	BackPhotoURL        string     `json:"back_photo_url,omitempty" bson:"back_photo_url,omitempty"`
	State               KycState   `json:"state" bson:"state"`
	ValidationTimestamp *time.Time `json:"validation_timestamp,omitempty" bson:"validation_timestamp,omitempty"`
	ValidationComment   string     `json:"validation_comment,omitempty" bson:"validation_comment,omitempty"`
}

// Decide applies a decision to the record. Only legal on a PENDING record and
// only for the APPROVED/REJECTED decisions; anything else fails without
// mutating the record.
func (r KycRecord) Decide(decision KycState, comment string, at time.Time) (KycRecord, error) {
	if decision != KycApproved && decision != KycRejected {
		return r, ErrInvalidDecision
	}
	if !r.State.CanTransitionTo(decision) {
		return r, ErrInvalidTransition
	}
	r.State = decision
	r.ValidationTimestamp = &at
	r.ValidationComment = comment
	return r, nil
}

// FilterKycByState returns the records in the given state; the zero state
// means no filter (ALL).
func FilterKycByState(records []KycRecord, state KycState) []KycRecord {
	if state == "" {
		return records
	}
	out := make([]KycRecord, 0, len(records))
	for _, r := range records {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}

// CountKycByState tallies records per state from the full unfiltered set, so
// displayed counts never drift from whatever filter is currently applied.
func CountKycByState(records []KycRecord) map[KycState]int {
	counts := map[KycState]int{
		KycPending:  0,
		KycApproved: 0,
		KycRejected: 0,
	}
	for _, r := range records {
		counts[r.State]++
	}
	return counts
}
