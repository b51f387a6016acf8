package review

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/ledger"
	"github.com/postbook-dev/postbook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testThresholds() Thresholds {
	return Thresholds{AutoConfirm: 0.95, ReviewFlag: 0.70}
}

func newTestPoster(t *testing.T) (*Poster, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(chart.Default())
	return NewPoster(l, chart.CodeBank, testThresholds(), nil), l
}

func candidate(desc, amount string, account int, conf float64) Candidate {
	return Candidate{
		Transaction: model.Transaction{
			Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Description: desc,
			Amount:      dec(amount),
			Reference:   "ref-" + desc,
		},
		Suggestion: model.Suggestion{
			AccountCode: account,
			VATCode:     model.VATStandard,
			Confidence:  conf,
			Reason:      "test",
			LinkRef:     "ref-" + desc,
		},
	}
}

func TestOutflowDebitsTargetCreditsBank(t *testing.T) {
	p, l := newTestPoster(t)

	// Money leaving the bank: target debited, bank credited.
	err := p.Post(candidate("fuel", "-50.00", 5110, 1.0), model.OriginHuman)
	require.NoError(t, err)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 5110, lines[0].AccountCode)
	assert.True(t, lines[0].Debit.Equal(dec("50.00")))
	assert.Equal(t, chart.CodeBank, lines[1].AccountCode)
	assert.True(t, lines[1].Credit.Equal(dec("50.00")))
}

func TestInflowDebitsBankCreditsTarget(t *testing.T) {
	p, l := newTestPoster(t)

	err := p.Post(candidate("sale", "1150.00", 4000, 1.0), model.OriginHuman)
	require.NoError(t, err)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, chart.CodeBank, lines[0].AccountCode)
	assert.True(t, lines[0].Debit.Equal(dec("1150.00")))
	assert.Equal(t, 4000, lines[1].AccountCode)
	assert.True(t, lines[1].Credit.Equal(dec("1150.00")))
}

func TestCounterpartyOverridesCashSide(t *testing.T) {
	p, l := newTestPoster(t)

	c := candidate("invoice settled later", "1150.00", 4000, 1.0)
	c.Counterparty = chart.CodeDebtorsControl

	require.NoError(t, p.Post(c, model.OriginHuman))

	lines := l.Lines()
	assert.Equal(t, chart.CodeDebtorsControl, lines[0].AccountCode, "debtors takes the cash side")
	assert.Equal(t, 4000, lines[1].AccountCode)
}

func TestPostComputesVATAmount(t *testing.T) {
	p, l := newTestPoster(t)

	require.NoError(t, p.Post(candidate("fuel", "-115.00", 5110, 1.0), model.OriginHuman))

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, lines[0].VATAmount.Equal(dec("15.00")), "vat = %s", lines[0].VATAmount)
	assert.Equal(t, model.VATStandard, lines[0].VATCode)
}

func TestPostPreservesSuggestionMetadata(t *testing.T) {
	p, l := newTestPoster(t)

	c := candidate("fuel", "-50.00", 5110, 0.75)
	require.NoError(t, p.Post(c, model.OriginAI))

	line := l.Lines()[0]
	assert.Equal(t, model.OriginAI, line.CreatedBy)
	assert.Equal(t, 0.75, line.Confidence)
	assert.Equal(t, "test", line.Reason)
	assert.Equal(t, "ref-fuel", line.LinkRef)
	assert.Equal(t, "fuel", line.Memo)
}

func TestPostGeneratesLinkRefWhenMissing(t *testing.T) {
	p, l := newTestPoster(t)

	c := candidate("fuel", "-50.00", 5110, 1.0)
	c.Transaction.Reference = ""
	c.Suggestion.LinkRef = ""
	require.NoError(t, p.Post(c, model.OriginHuman))

	assert.NotEmpty(t, l.Lines()[0].LinkRef)
}

func TestDecide(t *testing.T) {
	th := testThresholds()
	assert.Equal(t, StatusAutoConfirmed, th.Decide(0.95))
	assert.Equal(t, StatusAutoConfirmed, th.Decide(1.0))
	assert.Equal(t, StatusPendingReview, th.Decide(0.80))
	assert.Equal(t, StatusPendingReview, th.Decide(0.70))
	assert.Equal(t, StatusReviewFlagged, th.Decide(0.55))
}

func TestPostBatchThresholdsAndSkips(t *testing.T) {
	p, l := newTestPoster(t)

	candidates := []Candidate{
		candidate("auto", "-50.00", 5110, 0.99),     // posts as AI
		candidate("maybe", "-20.00", 5140, 0.80),    // needs review
		candidate("bad account", "-10.00", 9999, 1), // skipped: unknown account
		candidate("also auto", "230.00", 4000, 1.0), // posts as AI
	}

	result := p.PostBatch(candidates)

	assert.Equal(t, 2, result.Posted)
	require.Len(t, result.NeedsReview, 1)
	assert.Equal(t, "maybe", result.NeedsReview[0].Transaction.Description)

	require.Len(t, result.SkippedRows, 1)
	assert.Equal(t, 2, result.SkippedRows[0].Index)
	var unknownErr *ledger.UnknownAccountError
	assert.ErrorAs(t, result.SkippedRows[0].Err, &unknownErr)

	// The bad row did not poison the ledger.
	assert.Equal(t, 4, l.Len())
	assert.NotEmpty(t, result.BatchID)

	for _, line := range l.Lines() {
		assert.Equal(t, model.OriginAI, line.CreatedBy)
	}
}

func TestPostReviewedIgnoresThresholds(t *testing.T) {
	p, l := newTestPoster(t)

	result := p.PostReviewed([]Candidate{
		candidate("low confidence but human approved", "-50.00", 5110, 0.40),
	})

	assert.Equal(t, 1, result.Posted)
	assert.Empty(t, result.SkippedRows)
	assert.Equal(t, model.OriginHuman, l.Lines()[0].CreatedBy)
}

func TestZeroAmountCandidatePostsNothing(t *testing.T) {
	p, l := newTestPoster(t)

	require.NoError(t, p.Post(candidate("zero", "0.00", 5110, 1.0), model.OriginHuman))
	assert.Equal(t, 0, l.Len())
}
