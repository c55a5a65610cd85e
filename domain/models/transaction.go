package models

import (
	"fmt"
)

// RecordKind identifies the protocol operation carried by a record
type RecordKind string

const (
	// KindDeposit credits a client's available funds
	KindDeposit RecordKind = "deposit"

	// KindWithdrawal debits a client's available funds
	KindWithdrawal RecordKind = "withdrawal"

	// KindDispute opens a claim against a prior deposit or withdrawal
	KindDispute RecordKind = "dispute"

	// KindResolve settles an open dispute in the client's favor
	KindResolve RecordKind = "resolve"

	// KindChargeback settles an open dispute by reversing the funds and
	// freezing the account
	KindChargeback RecordKind = "chargeback"
)

// ParseRecordKind validates a raw type field against the known kinds.
func ParseRecordKind(s string) (RecordKind, error) {
	switch RecordKind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return RecordKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown record type %q", ErrMalformedRecord, s)
}

// RequiresAmount reports whether records of this kind carry an amount field.
func (k RecordKind) RequiresAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a single deposit or withdrawal, globally unique across the
// stream.
type TxID uint32

// TransactionRecord is one parsed input line. Amount is meaningful only for
// deposits and withdrawals.
type TransactionRecord struct {
	Kind   RecordKind
	Client ClientID
	Tx     TxID
	Amount Amount
}

// Validate checks the record against its kind's field requirements.
func (r TransactionRecord) Validate() error {
	if _, err := ParseRecordKind(string(r.Kind)); err != nil {
		return err
	}
	if r.Kind.RequiresAmount() && r.Amount < 0 {
		return fmt.Errorf("%w: %s with negative amount", ErrMalformedRecord, r.Kind)
	}
	return nil
}

// DisputeState tracks where a logged transaction sits in the dispute
// protocol.
type DisputeState string

const (
	// DisputeNone marks a transaction with no open claim; it may be disputed
	DisputeNone DisputeState = "none"

	// DisputeOngoing marks a transaction under an open dispute
	DisputeOngoing DisputeState = "disputed"

	// DisputeChargedBack is terminal: the transaction can never be disputed,
	// resolved or charged back again
	DisputeChargedBack DisputeState = "charged_back"
)

// LoggedTransaction records a successfully applied deposit or withdrawal so
// later dispute traffic can reference it. Entries are never deleted, even
// after a chargeback, to block transaction-id reuse.
type LoggedTransaction struct {
	Tx      TxID
	Client  ClientID
	Amount  Amount
	Kind    RecordKind
	Dispute DisputeState
}
