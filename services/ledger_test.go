package services

import (
	"testing"

	"github.com/kestrelpay/kestrel-go/domain/models"
)

func TestLedgerLazyAccountCreation(t *testing.T) {
	ledger := NewLedger()

	if _, ok := ledger.Lookup(1); ok {
		t.Fatal("Expected no account before first reference")
	}

	acct := ledger.Account(1)
	if acct.Client != 1 || acct.Available != 0 || acct.Held != 0 || acct.Locked {
		t.Errorf("Expected zeroed unlocked account, got %+v", acct)
	}

	if ledger.Account(1) != acct {
		t.Error("Expected repeated access to return the same account")
	}
	if ledger.Len() != 1 {
		t.Errorf("Expected 1 account, got %d", ledger.Len())
	}
}

func TestLedgerSnapshotOrderedCopies(t *testing.T) {
	ledger := NewLedger()
	for _, client := range []models.ClientID{42, 7, 19} {
		ledger.Account(client).Available = models.Amount(client) * 10000
	}

	snap := ledger.Snapshot()

	if len(snap) != 3 {
		t.Fatalf("Expected 3 accounts in snapshot, got %d", len(snap))
	}
	want := []models.ClientID{7, 19, 42}
	for i, client := range want {
		if snap[i].Client != client {
			t.Errorf("snapshot[%d].Client = %d, want %d", i, snap[i].Client, client)
		}
	}

	// Mutating the snapshot must not touch the ledger
	snap[0].Available = 0
	if acct, _ := ledger.Lookup(7); acct.Available != 70000 {
		t.Errorf("Expected ledger untouched by snapshot mutation, got available=%d", acct.Available)
	}
}

func TestTransactionLogRecordLookup(t *testing.T) {
	txlog := NewTransactionLog()

	if txlog.Contains(5) {
		t.Fatal("Expected empty log not to contain tx 5")
	}

	txlog.Record(models.LoggedTransaction{
		Tx:      5,
		Client:  1,
		Amount:  10000,
		Kind:    models.KindDeposit,
		Dispute: models.DisputeNone,
	})

	entry, ok := txlog.Lookup(5)
	if !ok {
		t.Fatal("Expected tx 5 to be logged")
	}
	if entry.Client != 1 || entry.Amount != 10000 || entry.Kind != models.KindDeposit {
		t.Errorf("Unexpected logged entry: %+v", entry)
	}
	if txlog.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", txlog.Len())
	}
}
