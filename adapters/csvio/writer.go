package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kestrelpay/kestrel-go/domain/models"
)

// Writer renders the final ledger snapshot as CSV. Pure read: it never
// mutates the accounts it is handed.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a snapshot writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSnapshot emits the header row followed by one row per account.
// Callers pass accounts already ordered by client id.
func (w *Writer) WriteSnapshot(accounts []models.Account) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, acct := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acct.Client), 10),
			acct.Available.String(),
			acct.Held.String(),
			acct.Total().String(),
			strconv.FormatBool(acct.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
