// Package store persists the journal as a flat sqlite table. The
// auto-increment id preserves audit order and created_at is storage
// metadata; neither participates in the in-memory invariants.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

const dateFormat = "2006-01-02"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS journals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    jdate TEXT NOT NULL,
    account_code INTEGER NOT NULL,
    debit TEXT NOT NULL,
    credit TEXT NOT NULL,
    memo TEXT,
    vat_code TEXT,
    vat_amount TEXT,
    link_ref TEXT,
    created_by TEXT,
    confidence REAL,
    reason TEXT,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journals_date ON journals(jdate);
`

// Store is a sqlite-backed journal table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the journal database at path and
// initializes the schema. WAL mode keeps concurrent readers cheap.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AppendLines inserts lines in order inside one transaction, so a
// double-entry pair is durable all-or-nothing.
func (s *Store) AppendLines(lines []model.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO journals (jdate, account_code, debit, credit, memo, vat_code,
			vat_amount, link_ref, created_by, confidence, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	for i, line := range lines {
		_, err := stmt.Exec(
			line.Date.Format(dateFormat),
			line.AccountCode,
			line.Debit.StringFixed(2),
			line.Credit.StringFixed(2),
			line.Memo,
			string(line.VATCode),
			line.VATAmount.StringFixed(2),
			line.LinkRef,
			string(line.CreatedBy),
			line.Confidence,
			line.Reason,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("inserting line %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// LoadLines returns all journal lines in insertion (audit) order.
func (s *Store) LoadLines() ([]model.JournalLine, error) {
	rows, err := s.db.Query(`
		SELECT jdate, account_code, debit, credit, memo, vat_code,
			vat_amount, link_ref, created_by, confidence, reason
		FROM journals ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying journals: %w", err)
	}
	defer rows.Close()

	var lines []model.JournalLine
	for rows.Next() {
		var (
			jdate, debitStr, creditStr, vatAmountStr  string
			memo, vatCode, linkRef, createdBy, reason string
			accountCode                               int
			confidence                                float64
		)
		if err := rows.Scan(&jdate, &accountCode, &debitStr, &creditStr, &memo,
			&vatCode, &vatAmountStr, &linkRef, &createdBy, &confidence, &reason); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}

		date, err := time.Parse(dateFormat, jdate)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", jdate, err)
		}
		debit, err := decimal.NewFromString(debitStr)
		if err != nil {
			return nil, fmt.Errorf("parsing debit %q: %w", debitStr, err)
		}
		credit, err := decimal.NewFromString(creditStr)
		if err != nil {
			return nil, fmt.Errorf("parsing credit %q: %w", creditStr, err)
		}
		vatAmount, err := decimal.NewFromString(vatAmountStr)
		if err != nil {
			return nil, fmt.Errorf("parsing vat_amount %q: %w", vatAmountStr, err)
		}

		lines = append(lines, model.JournalLine{
			Date:        date,
			AccountCode: accountCode,
			Debit:       debit,
			Credit:      credit,
			Memo:        memo,
			VATCode:     model.VATCode(vatCode),
			VATAmount:   vatAmount,
			LinkRef:     linkRef,
			CreatedBy:   model.Origin(createdBy),
			Confidence:  confidence,
			Reason:      reason,
		})
	}
	return lines, rows.Err()
}

// Clear deletes every journal row.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM journals`); err != nil {
		return fmt.Errorf("clearing journals: %w", err)
	}
	return nil
}
