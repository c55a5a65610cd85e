package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kestrelpay/kestrel-go/domain/models"
	"github.com/kestrelpay/kestrel-go/interfaces"
	"github.com/kestrelpay/kestrel-go/internal"
)

// RunStats counts per-record outcomes over one engine pass.
type RunStats struct {
	Processed int64
	Applied   int64
	Rejected  int64
}

// Engine applies transaction records to the ledger and transaction log in
// strict arrival order. It is single-threaded by construction: correctness
// depends on in-order application of deposit, dispute and resolve/chargeback
// for a given transaction id.
type Engine struct {
	ledger *Ledger
	txlog  *TransactionLog
	logger *internal.Logger
	stats  RunStats
}

// NewEngine creates an engine over the given stores.
func NewEngine(ledger *Ledger, txlog *TransactionLog, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &Engine{ledger: ledger, txlog: txlog, logger: logger}
}

// Apply runs one record through the state machine. A nil return means the
// record mutated state; a sentinel error means it was rejected and the
// ledger and transaction log are unchanged.
func (e *Engine) Apply(rec models.TransactionRecord) error {
	switch rec.Kind {
	case models.KindDeposit:
		return e.applyDeposit(rec)
	case models.KindWithdrawal:
		return e.applyWithdrawal(rec)
	case models.KindDispute:
		return e.applyDispute(rec)
	case models.KindResolve:
		return e.applyResolve(rec)
	case models.KindChargeback:
		return e.applyChargeback(rec)
	default:
		return fmt.Errorf("%w: unknown record type %q", models.ErrMalformedRecord, rec.Kind)
	}
}

func (e *Engine) applyDeposit(rec models.TransactionRecord) error {
	acct := e.ledger.Account(rec.Client)
	if acct.Locked {
		return models.ErrAccountLocked
	}
	if e.txlog.Contains(rec.Tx) {
		return models.ErrDuplicateTransaction
	}
	if err := acct.Deposit(rec.Amount); err != nil {
		return err
	}
	e.txlog.Record(models.LoggedTransaction{
		Tx:      rec.Tx,
		Client:  rec.Client,
		Amount:  rec.Amount,
		Kind:    models.KindDeposit,
		Dispute: models.DisputeNone,
	})
	return nil
}

func (e *Engine) applyWithdrawal(rec models.TransactionRecord) error {
	acct := e.ledger.Account(rec.Client)
	if acct.Locked {
		return models.ErrAccountLocked
	}
	if e.txlog.Contains(rec.Tx) {
		return models.ErrDuplicateTransaction
	}
	if err := acct.Withdraw(rec.Amount); err != nil {
		return err
	}
	e.txlog.Record(models.LoggedTransaction{
		Tx:      rec.Tx,
		Client:  rec.Client,
		Amount:  rec.Amount,
		Kind:    models.KindWithdrawal,
		Dispute: models.DisputeNone,
	})
	return nil
}

func (e *Engine) applyDispute(rec models.TransactionRecord) error {
	acct := e.ledger.Account(rec.Client)
	if acct.Locked {
		return models.ErrAccountLocked
	}
	entry, ok := e.txlog.Lookup(rec.Tx)
	if !ok || entry.Client != rec.Client || entry.Dispute != models.DisputeNone {
		return models.ErrUnknownTransaction
	}
	if err := acct.Hold(entry.Amount); err != nil {
		return err
	}
	entry.Dispute = models.DisputeOngoing
	return nil
}

func (e *Engine) applyResolve(rec models.TransactionRecord) error {
	acct := e.ledger.Account(rec.Client)
	if acct.Locked {
		return models.ErrAccountLocked
	}
	entry, ok := e.txlog.Lookup(rec.Tx)
	if !ok || entry.Client != rec.Client || entry.Dispute != models.DisputeOngoing {
		return models.ErrUnknownTransaction
	}
	if err := acct.Release(entry.Amount); err != nil {
		return err
	}
	entry.Dispute = models.DisputeNone
	return nil
}

func (e *Engine) applyChargeback(rec models.TransactionRecord) error {
	acct := e.ledger.Account(rec.Client)
	if acct.Locked {
		return models.ErrAccountLocked
	}
	entry, ok := e.txlog.Lookup(rec.Tx)
	if !ok || entry.Client != rec.Client || entry.Dispute != models.DisputeOngoing {
		return models.ErrUnknownTransaction
	}
	acct.ChargeBack(entry.Amount)
	entry.Dispute = models.DisputeChargedBack
	e.logger.Info(internal.ComponentEngine, "chargeback on tx=%d locked client=%d", rec.Tx, rec.Client)
	return nil
}

// Run consumes the source in a single forward pass, applying each record
// before reading the next. Rejections are logged and counted, never fatal;
// only a source read failure aborts the run. Outcomes are sent on the
// channel when one is provided.
func (e *Engine) Run(ctx context.Context, src interfaces.RecordSource, outcomes chan<- interfaces.Outcome) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			e.logger.Info(internal.ComponentEngine, "stream complete: processed=%d applied=%d rejected=%d",
				e.stats.Processed, e.stats.Applied, e.stats.Rejected)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading transaction stream: %w", err)
		}

		applyErr := e.Apply(rec)
		e.stats.Processed++
		if applyErr != nil {
			e.stats.Rejected++
			e.logger.Warn(internal.ComponentEngine, "rejected %s tx=%d client=%d: %v",
				rec.Kind, rec.Tx, rec.Client, applyErr)
		} else {
			e.stats.Applied++
		}

		if outcomes != nil {
			outcome := interfaces.Outcome{
				Kind:    rec.Kind,
				Client:  rec.Client,
				Tx:      rec.Tx,
				Applied: applyErr == nil,
			}
			if applyErr != nil {
				outcome.Reason = applyErr.Error()
			}
			select {
			case outcomes <- outcome:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() RunStats {
	return e.stats
}
