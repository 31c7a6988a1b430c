package domain

import "testing"

func TestReconcileBalance_Agreement(t *testing.T) {
	account := Account{AccountNumber: "AC-1", CurrentBalance: 1500}
	collections := []Collection{
		{AccountNumber: "AC-1", Amount: 1000},
		{AccountNumber: "AC-1", Amount: 1000},
	}
	withdrawals := []Withdrawal{
		{AccountNumber: "AC-1", Amount: 500},
	}

	if d := ReconcileBalance(account, collections, withdrawals); d != nil {
		t.Fatalf("expected agreement, got discrepancy %+v", d)
	}
}

func TestReconcileBalance_Discrepancy(t *testing.T) {
	account := Account{AccountNumber: "AC-1", CurrentBalance: 2000}
	collections := []Collection{{AccountNumber: "AC-1", Amount: 1000}}

	d := ReconcileBalance(account, collections, nil)
	if d == nil {
		t.Fatalf("expected discrepancy")
	}
	if d.Reported != 2000 || d.Recomputed != 1000 || d.Difference != 1000 {
		t.Fatalf("unexpected discrepancy: %+v", d)
	}
	if d.AccountNumber != "AC-1" {
		t.Fatalf("account = %s", d.AccountNumber)
	}
}

func TestReconcileBalance_EmptyLedger(t *testing.T) {
	account := Account{AccountNumber: "AC-2", CurrentBalance: 0}
	if d := ReconcileBalance(account, nil, nil); d != nil {
		t.Fatalf("zero balance with empty ledger must agree, got %+v", d)
	}
}
