package models

import (
	"errors"
)

// Domain error types
var (
	// ErrMalformedRecord is returned when an input line cannot be parsed
	// into a transaction record
	ErrMalformedRecord = errors.New("malformed transaction record")

	// ErrDuplicateTransaction is returned when a deposit or withdrawal
	// reuses a transaction id that was already logged
	ErrDuplicateTransaction = errors.New("transaction id already processed")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available balance of the account
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrUnknownTransaction is returned when a dispute, resolve or chargeback
	// references a transaction that is unknown, belongs to a different
	// client, or is not in the required dispute state
	ErrUnknownTransaction = errors.New("unknown or mismatched transaction reference")

	// ErrAccountLocked is returned when any transaction targets an account
	// frozen by a chargeback
	ErrAccountLocked = errors.New("account is locked")

	// ErrAmountOverflow is returned when fixed-point arithmetic would leave
	// the representable range
	ErrAmountOverflow = errors.New("amount overflows fixed-point range")
)
