package interfaces

import (
	"context"

	"github.com/kestrelpay/kestrel-go/domain/models"
)

// RecordSource yields parsed transaction records one at a time in stream
// order. Next returns io.EOF once the stream is exhausted; any other error
// is a fatal input failure.
type RecordSource interface {
	Next() (models.TransactionRecord, error)
}

// SnapshotWriter renders the final ledger snapshot.
type SnapshotWriter interface {
	WriteSnapshot(accounts []models.Account) error
}

// Outcome reports how the engine handled a single record.
type Outcome struct {
	Kind    models.RecordKind `json:"kind"`
	Client  models.ClientID   `json:"client"`
	Tx      models.TxID       `json:"tx"`
	Applied bool              `json:"applied"`
	Reason  string            `json:"reason,omitempty"`
}

// OutcomeSink receives per-record outcomes for observability.
type OutcomeSink interface {
	// Emit delivers one outcome; failures must not affect the engine
	Emit(ctx context.Context, outcome Outcome) error

	// Close releases the sink's resources
	Close() error
}
