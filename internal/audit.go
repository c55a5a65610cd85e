package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kestrelpay/kestrel-go/interfaces"
)

// AuditStore persists rejected records to SQLite for later inspection. It is
// an observability artifact: ledger state itself is never persisted.
type AuditStore struct {
	db    *sql.DB
	runID string
}

// NewAuditStore opens the audit database at path, creating the schema if
// needed.
func NewAuditStore(path, runID string) (*AuditStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if err := initializeAuditSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &AuditStore{db: db, runID: runID}, nil
}

func initializeAuditSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rejected_records (
			run_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			client INTEGER NOT NULL,
			tx INTEGER NOT NULL,
			reason TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create rejected_records table: %w", err)
	}

	return nil
}

// Emit stores rejected outcomes; applied records are not audited.
func (s *AuditStore) Emit(ctx context.Context, outcome interfaces.Outcome) error {
	if outcome.Applied {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rejected_records (run_id, kind, client, tx, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.runID, string(outcome.Kind), int64(outcome.Client), int64(outcome.Tx),
		outcome.Reason, time.Now().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to record rejection: %w", err)
	}

	return nil
}

// RejectionCount returns how many rejections the given run recorded.
func (s *AuditStore) RejectionCount(ctx context.Context, runID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rejected_records WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rejections: %w", err)
	}

	return count, nil
}

// Close closes the database connection
func (s *AuditStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
