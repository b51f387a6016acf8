package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

// FNBParser parses FNB current account CSV exports
// (Date,Amount,Balance,Description).
type FNBParser struct{}

const (
	fnbDateFormat = "2006/01/02"
	fnbNumFields  = 4
	fnbColDate    = 0
	fnbColAmount  = 1
	fnbColDesc    = 3
)

// Format returns the parser name.
func (p *FNBParser) Format() string { return "fnb" }

// Parse reads an FNB CSV and returns Transactions.
func (p *FNBParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fnbNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading fnb CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseFNBRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseFNBRow(rec []string) (model.Transaction, error) {
	if rec[fnbColDate] == "" {
		return model.Transaction{}, fmt.Errorf("missing date")
	}
	date, err := time.Parse(fnbDateFormat, rec[fnbColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[fnbColDate], err)
	}

	if rec[fnbColAmount] == "" {
		return model.Transaction{}, fmt.Errorf("missing amount")
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(rec[fnbColAmount], ",", ""))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[fnbColAmount], err)
	}

	desc := rec[fnbColDesc]
	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeFNBRef(date, desc),
		Source:      "bank_csv",
		Currency:    DefaultCurrency,
	}, nil
}

// makeFNBRef creates a reference like fnb_20240101_SHELLFUEL.
func makeFNBRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("fnb_%s_%s", date.Format("20060102"), prefix)
}
