package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a candidate movement arriving from an ingestion source.
// The sign of Amount is established at ingestion and never mutated
// downstream: positive = inflow, negative = outflow.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
	Source      string // e.g. "bank_csv", "invoice_csv"
	Currency    string // single-currency engine, defaults to ZAR
}

// Suggestion is a classification proposal for one transaction.
type Suggestion struct {
	AccountCode int
	VATCode     VATCode
	Confidence  float64
	Reason      string
	LinkRef     string // the originating transaction's reference
}
