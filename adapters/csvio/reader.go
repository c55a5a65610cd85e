// Package csvio streams transaction records in and account snapshots out as
// CSV.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kestrelpay/kestrel-go/domain/models"
	"github.com/kestrelpay/kestrel-go/internal"
)

// Reader is a forward-only record source over a CSV transaction stream. It
// reads one row at a time and never materializes the input. Malformed rows
// are logged, counted and skipped; the stream continues.
type Reader struct {
	csv       *csv.Reader
	logger    *internal.Logger
	firstRow  bool
	malformed int64
}

// NewReader wraps r in a streaming record source.
func NewReader(r io.Reader, logger *internal.Logger) *Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &Reader{csv: cr, logger: logger, firstRow: true}
}

// Next returns the next valid record, io.EOF at end of stream, or a fatal
// read error.
func (r *Reader) Next() (models.TransactionRecord, error) {
	for {
		fields, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return models.TransactionRecord{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.skip(fmt.Errorf("%w: %v", models.ErrMalformedRecord, err))
			continue
		}
		if err != nil {
			return models.TransactionRecord{}, fmt.Errorf("reading input: %w", err)
		}

		if r.firstRow {
			r.firstRow = false
			if isHeader(fields) {
				continue
			}
		}

		rec, err := parseRecord(fields)
		if err != nil {
			r.skip(err)
			continue
		}
		return rec, nil
	}
}

// Malformed reports how many rows the parser rejected.
func (r *Reader) Malformed() int64 {
	return r.malformed
}

func (r *Reader) skip(err error) {
	r.malformed++
	r.logger.Warn(internal.ComponentParser, "skipping malformed row: %v", err)
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "type")
}

func parseRecord(fields []string) (models.TransactionRecord, error) {
	var rec models.TransactionRecord

	if len(fields) < 3 || len(fields) > 4 {
		return rec, fmt.Errorf("%w: expected 3 or 4 fields, got %d", models.ErrMalformedRecord, len(fields))
	}

	kind, err := models.ParseRecordKind(strings.TrimSpace(fields[0]))
	if err != nil {
		return rec, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid client id %q", models.ErrMalformedRecord, fields[1])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid transaction id %q", models.ErrMalformedRecord, fields[2])
	}

	rec.Kind = kind
	rec.Client = models.ClientID(client)
	rec.Tx = models.TxID(tx)

	if kind.RequiresAmount() {
		if len(fields) < 4 || strings.TrimSpace(fields[3]) == "" {
			return rec, fmt.Errorf("%w: %s requires an amount", models.ErrMalformedRecord, kind)
		}
		amount, err := models.ParseAmount(fields[3])
		if err != nil {
			return rec, err
		}
		rec.Amount = amount
	}

	return rec, nil
}
