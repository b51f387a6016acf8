package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

// StandardParser parses the generic interchange CSV:
// date,description,amount,reference with an ISO date and a signed
// decimal amount (positive = inflow, negative = outflow).
type StandardParser struct{}

const (
	stdDateFormat = "2006-01-02"
	stdNumFields  = 4
	stdColDate    = 0
	stdColDesc    = 1
	stdColAmount  = 2
	stdColRef     = 3
)

// Format returns the parser name.
func (p *StandardParser) Format() string { return "standard" }

// Parse reads a standard CSV and returns Transactions.
func (p *StandardParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = stdNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading standard CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseStandardRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseStandardRow(rec []string) (model.Transaction, error) {
	if rec[stdColDate] == "" {
		return model.Transaction{}, fmt.Errorf("missing date")
	}
	date, err := time.Parse(stdDateFormat, rec[stdColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[stdColDate], err)
	}

	if rec[stdColAmount] == "" {
		return model.Transaction{}, fmt.Errorf("missing amount")
	}
	amount, err := decimal.NewFromString(rec[stdColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[stdColAmount], err)
	}

	return model.Transaction{
		Date:        date,
		Description: rec[stdColDesc],
		Amount:      amount,
		Reference:   rec[stdColRef],
		Source:      "bank_csv",
		Currency:    DefaultCurrency,
	}, nil
}
