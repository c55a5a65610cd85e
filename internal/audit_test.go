package internal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kestrelpay/kestrel-go/interfaces"
)

func TestAuditStoreRecordsRejectionsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := NewAuditStore(path, "run-1")
	if err != nil {
		t.Fatalf("NewAuditStore() returned unexpected error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	applied := interfaces.Outcome{Kind: "deposit", Client: 1, Tx: 1, Applied: true}
	if err := store.Emit(ctx, applied); err != nil {
		t.Fatalf("Emit(applied) returned unexpected error: %v", err)
	}

	rejected := interfaces.Outcome{
		Kind: "withdrawal", Client: 1, Tx: 2,
		Applied: false, Reason: "insufficient funds",
	}
	if err := store.Emit(ctx, rejected); err != nil {
		t.Fatalf("Emit(rejected) returned unexpected error: %v", err)
	}

	count, err := store.RejectionCount(ctx, "run-1")
	if err != nil {
		t.Fatalf("RejectionCount() returned unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("RejectionCount() = %d, want 1", count)
	}

	other, err := store.RejectionCount(ctx, "run-2")
	if err != nil {
		t.Fatalf("RejectionCount() returned unexpected error: %v", err)
	}
	if other != 0 {
		t.Errorf("RejectionCount() for unknown run = %d, want 0", other)
	}
}
