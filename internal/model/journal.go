package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VATCode is the tax treatment tag carried on a journal line.
// Spellings are part of the interop contract and must not change.
type VATCode string

const (
	VATStandard VATCode = "STD"    // standard-rated, 15% inclusive
	VATZero     VATCode = "ZERO"   // zero-rated
	VATExempt   VATCode = "EXEMPT" // outside VAT scope (e.g. interest)
	VATNone     VATCode = "NONE"   // not applicable
)

// ParseVATCode matches a string against the closed VAT code set,
// case-insensitively. ok is false for anything outside the set.
func ParseVATCode(s string) (VATCode, bool) {
	switch VATCode(strings.ToUpper(strings.TrimSpace(s))) {
	case VATStandard:
		return VATStandard, true
	case VATZero:
		return VATZero, true
	case VATExempt:
		return VATExempt, true
	case VATNone:
		return VATNone, true
	}
	return VATNone, false
}

// Origin tags who created a posting.
type Origin string

const (
	OriginAI    Origin = "AI"
	OriginHuman Origin = "Human"
)

// JournalLine is one posted accounting movement. Lines are created only
// as one half of a double-entry pair and are immutable once posted.
type JournalLine struct {
	Date        time.Time
	AccountCode int
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Memo        string
	VATCode     VATCode
	VATAmount   decimal.Decimal // informational, not separately posted
	LinkRef     string          // back-reference to the source transaction
	CreatedBy   Origin
	Confidence  float64 // 0..1
	Reason      string
}

// TrialBalanceRow is one derived per-account summary row. TBDebit holds a
// net positive balance, TBCredit a net negative balance flipped positive.
type TrialBalanceRow struct {
	AccountCode int
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	TBDebit     decimal.Decimal
	TBCredit    decimal.Decimal
}
