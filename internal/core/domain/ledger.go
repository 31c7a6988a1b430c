package domain

import "time"

// Collection is a recorded cash deposit against an account. Append-only:
// never mutated after creation, only ever created or read.
type Collection struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	AccountNumber string    `json:"account_number" bson:"account_number"`
	AgentID       string    `json:"agent_id" bson:"agent_id"`
	Amount        float64   `json:"amount" bson:"amount"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	PaymentMode   string    `json:"payment_mode" bson:"payment_mode"`
	ProofURL      string    `json:"proof_url,omitempty" bson:"proof_url,omitempty"`
}

// Withdrawal is a recorded cash removal from an account. Same append-only
// lifecycle as Collection.
type Withdrawal struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	AccountNumber string    `json:"account_number" bson:"account_number"`
	Amount        float64   `json:"amount" bson:"amount"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	Reason        string    `json:"reason,omitempty" bson:"reason,omitempty"`
}

// BalanceDiscrepancy surfaces a mismatch between the store-reported balance
// and the sum of movements recomputed from the ledger. The core reports the
// disagreement; which side is authoritative is a product decision it does not
// make.
type BalanceDiscrepancy struct {
	AccountNumber string  `json:"account_number"`
	Reported      float64 `json:"reported"`
	Recomputed    float64 `json:"recomputed"`
	Difference    float64 `json:"difference"`
}

// ReconcileBalance compares an account's reported balance with
// sum(collections) − sum(withdrawals). Returns nil when they agree.
func ReconcileBalance(account Account, collections []Collection, withdrawals []Withdrawal) *BalanceDiscrepancy {
	var recomputed float64
	for _, c := range collections {
		recomputed += c.Amount
	}
	for _, w := range withdrawals {
		recomputed -= w.Amount
	}
	if recomputed == account.CurrentBalance {
		return nil
	}
	return &BalanceDiscrepancy{
		AccountNumber: account.AccountNumber,
		Reported:      account.CurrentBalance,
		Recomputed:    recomputed,
		Difference:    account.CurrentBalance - recomputed,
	}
}
