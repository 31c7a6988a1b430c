package domain

import (
	"errors"
	"testing"
	"time"
)

func TestKycState_Transitions(t *testing.T) {
	if !KycPending.CanTransitionTo(KycApproved) {
		t.Fatalf("PENDING -> APPROVED must be allowed")
	}
	if !KycPending.CanTransitionTo(KycRejected) {
		t.Fatalf("PENDING -> REJECTED must be allowed")
	}
	for _, terminal := range []KycState{KycApproved, KycRejected} {
		if !terminal.Terminal() {
			t.Fatalf("%s must be terminal", terminal)
		}
		for _, next := range []KycState{KycPending, KycApproved, KycRejected} {
			if terminal.CanTransitionTo(next) {
				t.Fatalf("%s -> %s must be refused", terminal, next)
			}
		}
	}
}

func TestKycRecord_Decide_Pending(t *testing.T) {
	rec := KycRecord{ID: "k1", State: KycPending}
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	decided, err := rec.Decide(KycApproved, "documents conformes", at)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if decided.State != KycApproved {
		t.Fatalf("state = %s, want APPROVED", decided.State)
	}
	if decided.ValidationTimestamp == nil || !decided.ValidationTimestamp.Equal(at) {
		t.Fatalf("validation timestamp not stamped: %v", decided.ValidationTimestamp)
	}
	if decided.ValidationComment != "documents conformes" {
		t.Fatalf("comment = %q", decided.ValidationComment)
	}
}

func TestKycRecord_Decide_Terminal(t *testing.T) {
	for _, state := range []KycState{KycApproved, KycRejected} {
		rec := KycRecord{ID: "k1", State: state}
		got, err := rec.Decide(KycRejected, "", time.Now())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Decide on %s: expected ErrInvalidTransition, got %v", state, err)
		}
		if got.State != state || got.ValidationTimestamp != nil {
			t.Fatalf("record mutated on refused decision: %+v", got)
		}
	}
}

func TestKycRecord_Decide_InvalidDecision(t *testing.T) {
	rec := KycRecord{ID: "k1", State: KycPending}
	if _, err := rec.Decide(KycPending, "", time.Now()); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := rec.Decide(KycState("MAYBE"), "", time.Now()); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestFilterAndCountKyc(t *testing.T) {
	records := []KycRecord{
		{ID: "a", State: KycPending},
		{ID: "b", State: KycPending},
		{ID: "c", State: KycApproved},
		{ID: "d", State: KycRejected},
	}

	if got := len(FilterKycByState(records, KycPending)); got != 2 {
		t.Fatalf("pending filter = %d, want 2", got)
	}
	if got := len(FilterKycByState(records, "")); got != 4 {
		t.Fatalf("ALL filter = %d, want 4", got)
	}

	// Counts come from the full set and must sum to the total regardless of
	// any filter applied elsewhere.
	counts := CountKycByState(FilterKycByState(records, ""))
	sum := counts[KycPending] + counts[KycApproved] + counts[KycRejected]
	if sum != len(records) {
		t.Fatalf("counts sum = %d, want %d", sum, len(records))
	}
	if counts[KycPending] != 2 || counts[KycApproved] != 1 || counts[KycRejected] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
