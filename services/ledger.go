// Package services hosts the transaction engine and the in-memory stores it
// exclusively owns for the duration of a run.
package services

import (
	"sort"

	"github.com/kestrelpay/kestrel-go/domain/models"
)

// Ledger maps client ids to their accounts. It is owned and mutated solely
// by the Engine; readers get value copies.
type Ledger struct {
	accounts map[models.ClientID]*models.Account
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[models.ClientID]*models.Account)}
}

// Account returns the account for client, creating it lazily on the first
// transaction that references the client.
func (l *Ledger) Account(client models.ClientID) *models.Account {
	acct, ok := l.accounts[client]
	if !ok {
		acct = models.NewAccount(client)
		l.accounts[client] = acct
	}
	return acct
}

// Lookup returns the account for client without creating one.
func (l *Ledger) Lookup(client models.ClientID) (*models.Account, bool) {
	acct, ok := l.accounts[client]
	return acct, ok
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Snapshot returns value copies of every account in ascending client order.
func (l *Ledger) Snapshot() []models.Account {
	out := make([]models.Account, 0, len(l.accounts))
	for _, acct := range l.accounts {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// TransactionLog maps transaction ids to the deposits and withdrawals that
// created them. Entries are never removed, even after a chargeback.
type TransactionLog struct {
	entries map[models.TxID]*models.LoggedTransaction
}

// NewTransactionLog creates an empty transaction log.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{entries: make(map[models.TxID]*models.LoggedTransaction)}
}

// Contains reports whether tx was already logged.
func (t *TransactionLog) Contains(tx models.TxID) bool {
	_, ok := t.entries[tx]
	return ok
}

// Record stores a newly applied deposit or withdrawal.
func (t *TransactionLog) Record(entry models.LoggedTransaction) {
	t.entries[entry.Tx] = &entry
}

// Lookup returns the logged transaction for tx.
func (t *TransactionLog) Lookup(tx models.TxID) (*models.LoggedTransaction, bool) {
	entry, ok := t.entries[tx]
	return entry, ok
}

// Len returns the number of logged transactions.
func (t *TransactionLog) Len() int {
	return len(t.entries)
}
