package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kestrelpay/kestrel-go/domain/models"
)

func readAll(t *testing.T, r *Reader) []models.TransactionRecord {
	t.Helper()
	var recs []models.TransactionRecord
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return recs
		}
		if err != nil {
			t.Fatalf("Next() returned unexpected error: %v", err)
		}
		recs = append(recs, rec)
	}
}

func TestReaderParsesTrimmedStream(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.05
`
	recs := readAll(t, NewReader(strings.NewReader(input), nil))

	if len(recs) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(recs))
	}

	first := recs[0]
	if first.Kind != models.KindDeposit || first.Client != 1 || first.Tx != 1 || first.Amount != 10000 {
		t.Errorf("Unexpected first record: %+v", first)
	}

	last := recs[4]
	if last.Kind != models.KindWithdrawal || last.Client != 2 || last.Tx != 5 || last.Amount != 30500 {
		t.Errorf("Unexpected last record: %+v", last)
	}
}

func TestReaderParsesDisputeRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.TransactionRecord
	}{
		{
			"three fields",
			"dispute, 1, 7\n",
			models.TransactionRecord{Kind: models.KindDispute, Client: 1, Tx: 7},
		},
		{
			"trailing empty amount",
			"resolve, 1, 7,\n",
			models.TransactionRecord{Kind: models.KindResolve, Client: 1, Tx: 7},
		},
		{
			"amount present but ignored",
			"chargeback, 3, 9, 5.0\n",
			models.TransactionRecord{Kind: models.KindChargeback, Client: 3, Tx: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := readAll(t, NewReader(strings.NewReader(tt.input), nil))
			if len(recs) != 1 {
				t.Fatalf("Expected 1 record, got %d", len(recs))
			}
			if recs[0] != tt.want {
				t.Errorf("Next() = %+v, want %+v", recs[0], tt.want)
			}
		})
	}
}

func TestReaderSkipsMalformedRows(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
teleport, 1, 2, 1.0
deposit, abc, 3, 1.0
deposit, 1, 4
deposit, 1, 5, -1.0
deposit, 1, 6, 1.00001
deposit, 1, 7, 2.0
`
	reader := NewReader(strings.NewReader(input), nil)
	recs := readAll(t, reader)

	if len(recs) != 2 {
		t.Fatalf("Expected 2 valid records, got %d: %+v", len(recs), recs)
	}
	if recs[0].Tx != 1 || recs[1].Tx != 7 {
		t.Errorf("Expected records with tx 1 and 7, got %+v", recs)
	}
	if reader.Malformed() != 5 {
		t.Errorf("Malformed() = %d, want 5", reader.Malformed())
	}
}

func TestReaderWithoutHeader(t *testing.T) {
	input := "deposit, 1, 1, 1.0\n"
	recs := readAll(t, NewReader(strings.NewReader(input), nil))

	if len(recs) != 1 {
		t.Fatalf("Expected 1 record when the header is absent, got %d", len(recs))
	}
	if recs[0].Amount != 10000 {
		t.Errorf("Expected amount 10000, got %d", recs[0].Amount)
	}
}

func TestReaderEmptyStream(t *testing.T) {
	reader := NewReader(strings.NewReader(""), nil)
	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() on empty stream = %v, want io.EOF", err)
	}
}
