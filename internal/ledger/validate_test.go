package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/model"
)

func pair(date time.Time, debitAcct, creditAcct int, amount string) []model.JournalLine {
	return []model.JournalLine{
		{Date: date, AccountCode: debitAcct, Debit: dec(amount), VATCode: model.VATNone},
		{Date: date, AccountCode: creditAcct, Credit: dec(amount), VATCode: model.VATNone},
	}
}

func TestValidateCleanLedger(t *testing.T) {
	lines := append(
		pair(testDate(), 5000, 4000, "100.00"),
		pair(testDate(), 5110, 1000, "57.50")...,
	)
	assert.Empty(t, ValidateLines(lines, chart.Default()))
}

func TestValidateEmpty(t *testing.T) {
	assert.Empty(t, ValidateLines(nil, chart.Default()))
}

func TestValidateBothSidesSet(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.00")
	lines[0].Credit = dec("100.00")

	errs := ValidateLines(lines, chart.Default())
	require.NotEmpty(t, errs)
	assert.Equal(t, 2, errs[0].Invariant)
}

func TestValidateUnknownAccount(t *testing.T) {
	lines := pair(testDate(), 9999, 4000, "100.00")

	errs := ValidateLines(lines, chart.Default())
	found := false
	for _, e := range errs {
		if e.Invariant == 3 {
			found = true
			assert.Contains(t, e.Description, "9999")
		}
	}
	assert.True(t, found, "expected invariant 3 violation, got %v", errs)
}

func TestValidateExcessPrecision(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.001")

	errs := ValidateLines(lines, chart.Default())
	found := false
	for _, e := range errs {
		if e.Invariant == 4 {
			found = true
		}
	}
	assert.True(t, found, "expected invariant 4 violation, got %v", errs)
}

func TestValidateOddLineCount(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.00")[:1]

	errs := ValidateLines(lines, chart.Default())
	hasPairErr := false
	hasBalanceErr := false
	for _, e := range errs {
		switch e.Invariant {
		case 5:
			hasPairErr = true
		case 1:
			hasBalanceErr = true
		}
	}
	assert.True(t, hasPairErr)
	assert.True(t, hasBalanceErr)
}

func TestValidateUnbalancedPair(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.00")
	lines[1].Credit = dec("90.00")

	errs := ValidateLines(lines, chart.Default())
	require.NotEmpty(t, errs)

	invariants := make(map[int]bool)
	for _, e := range errs {
		invariants[e.Invariant] = true
	}
	assert.True(t, invariants[1], "ledger-wide balance must fail")
	assert.True(t, invariants[5], "pair balance must fail")
}

func TestValidateDivergentPairMetadata(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.00")
	lines[1].Memo = "only on the credit line"

	errs := ValidateLines(lines, chart.Default())
	found := false
	for _, e := range errs {
		if e.Invariant == 5 {
			found = true
			assert.Contains(t, e.Description, "metadata")
		}
	}
	assert.True(t, found, "expected metadata divergence, got %v", errs)
}

func TestValidateDivergentVATAmount(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "115.00")
	lines[0].VATAmount = dec("15.00")
	lines[1].VATAmount = dec("14.00")

	errs := ValidateLines(lines, chart.Default())
	found := false
	for _, e := range errs {
		if e.Invariant == 5 {
			found = true
			assert.Contains(t, e.Description, "metadata")
		}
	}
	assert.True(t, found, "expected metadata divergence, got %v", errs)
}

func TestValidateCreditFirstPair(t *testing.T) {
	lines := pair(testDate(), 5000, 4000, "100.00")
	lines[0], lines[1] = lines[1], lines[0]

	errs := ValidateLines(lines, chart.Default())
	found := false
	for _, e := range errs {
		if e.Invariant == 5 {
			found = true
		}
	}
	assert.True(t, found, "expected pair-order violation, got %v", errs)
}
