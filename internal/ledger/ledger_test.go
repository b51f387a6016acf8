package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDate() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(chart.Default())
}

func post(t *testing.T, l *Ledger, debit, credit int, amount string) {
	t.Helper()
	err := l.PostDoubleEntry(PostParams{
		Date:          testDate(),
		DebitAccount:  debit,
		CreditAccount: credit,
		Amount:        dec(amount),
		CreatedBy:     model.OriginHuman,
		VATCode:       model.VATNone,
		Confidence:    1,
	})
	require.NoError(t, err)
}

func assertBalanced(t *testing.T, l *Ledger) {
	t.Helper()
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range l.TrialBalance() {
		totalDebit = totalDebit.Add(row.TBDebit)
		totalCredit = totalCredit.Add(row.TBCredit)
	}
	assert.True(t, totalDebit.Equal(totalCredit),
		"TB debits %s != TB credits %s", totalDebit, totalCredit)
}

func TestPostDoubleEntry(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 4000, "100.00")

	require.Equal(t, 2, l.Len())

	tb := l.TrialBalance()
	require.Len(t, tb, 2)

	assert.Equal(t, 4000, tb[0].AccountCode)
	assert.Equal(t, "Sales Revenue", tb[0].AccountName)
	assert.Equal(t, model.AccountTypeRevenue, tb[0].AccountType)
	assert.True(t, tb[0].TBCredit.Equal(dec("100.00")))
	assert.True(t, tb[0].TBDebit.IsZero())

	assert.Equal(t, 5000, tb[1].AccountCode)
	assert.Equal(t, "Cost of Sales", tb[1].AccountName)
	assert.True(t, tb[1].TBDebit.Equal(dec("100.00")))
	assert.True(t, tb[1].TBCredit.IsZero())

	assertBalanced(t, l)
}

func TestBalanceInvariantAfterEveryPost(t *testing.T) {
	l := newTestLedger(t)
	postings := []struct {
		debit, credit int
		amount        string
	}{
		{5000, 1000, "250.00"},
		{1000, 4000, "1150.00"},
		{5110, 1000, "57.50"},
		{5160, 1000, "12000.00"},
		{1000, 4020, "3.17"},
	}
	for _, p := range postings {
		post(t, l, p.debit, p.credit, p.amount)
		assertBalanced(t, l)

		debit, credit := l.Totals()
		assert.True(t, debit.Equal(credit), "ledger debits %s != credits %s", debit, credit)
	}
	assert.Empty(t, l.Validate())
}

func TestZeroAmountIsNoOp(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 1000, "0.00")
	assert.Equal(t, 0, l.Len())

	// Rounds to zero first, then no-ops.
	post(t, l, 5000, 1000, "0.004")
	assert.Equal(t, 0, l.Len())
}

func TestAmountRoundedToCents(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 1000, "10.005")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Debit.Equal(dec("10.01")), "debit = %s", lines[0].Debit)
	assert.True(t, lines[1].Credit.Equal(dec("10.01")))
}

func TestNegativeAmountRejected(t *testing.T) {
	l := newTestLedger(t)
	err := l.PostDoubleEntry(PostParams{
		Date:          testDate(),
		DebitAccount:  5000,
		CreditAccount: 1000,
		Amount:        dec("-50.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, 0, l.Len())
}

func TestUnknownAccountLeavesLedgerUnchanged(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 4000, "100.00")
	before := l.Len()

	err := l.PostDoubleEntry(PostParams{
		Date:          testDate(),
		DebitAccount:  9999,
		CreditAccount: 1000,
		Amount:        dec("10.00"),
	})
	require.Error(t, err)

	var unknownErr *UnknownAccountError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, 9999, unknownErr.Code)
	assert.Equal(t, before, l.Len())

	// Credit side checked too; still no partial insert.
	err = l.PostDoubleEntry(PostParams{
		Date:          testDate(),
		DebitAccount:  1000,
		CreditAccount: 8888,
		Amount:        dec("10.00"),
	})
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, 8888, unknownErr.Code)
	assert.Equal(t, before, l.Len())
}

func TestPairSharesMetadata(t *testing.T) {
	l := newTestLedger(t)
	err := l.PostDoubleEntry(PostParams{
		Date:          testDate(),
		DebitAccount:  5110,
		CreditAccount: 1000,
		Amount:        dec("57.50"),
		Memo:          "Shell fuel",
		LinkRef:       "fnb_20240101_SHELL",
		CreatedBy:     model.OriginAI,
		VATCode:       model.VATStandard,
		VATAmount:     dec("7.50"),
		Confidence:    0.75,
		Reason:        "keyword match: fuel",
	})
	require.NoError(t, err)

	lines := l.Lines()
	require.Len(t, lines, 2)
	d, c := lines[0], lines[1]

	assert.True(t, d.Debit.Equal(dec("57.50")))
	assert.True(t, d.Credit.IsZero())
	assert.True(t, c.Credit.Equal(dec("57.50")))
	assert.True(t, c.Debit.IsZero())

	assert.Equal(t, d.Date, c.Date)
	assert.Equal(t, d.Memo, c.Memo)
	assert.Equal(t, d.VATCode, c.VATCode)
	assert.True(t, d.VATAmount.Equal(c.VATAmount))
	assert.Equal(t, d.LinkRef, c.LinkRef)
	assert.Equal(t, d.CreatedBy, c.CreatedBy)
	assert.Equal(t, d.Confidence, c.Confidence)
	assert.Equal(t, d.Reason, c.Reason)
}

func TestSelfOffsettingPostingPermitted(t *testing.T) {
	// Same account on both sides nets to a zero trial balance row but
	// still records both lines.
	l := newTestLedger(t)
	post(t, l, 5000, 5000, "40.00")

	assert.Equal(t, 2, l.Len())
	tb := l.TrialBalance()
	require.Len(t, tb, 1)
	assert.True(t, tb[0].Debit.Equal(dec("40.00")))
	assert.True(t, tb[0].Credit.Equal(dec("40.00")))
	assert.True(t, tb[0].TBDebit.IsZero())
	assert.True(t, tb[0].TBCredit.IsZero())
	assertBalanced(t, l)
}

func TestTrialBalanceOrderedByCode(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5160, 1000, "10.00")
	post(t, l, 5000, 4000, "20.00")
	post(t, l, 1030, 2010, "5.00")

	tb := l.TrialBalance()
	for i := 1; i < len(tb); i++ {
		assert.Less(t, tb[i-1].AccountCode, tb[i].AccountCode)
	}
}

func TestTrialBalanceEmptyLedger(t *testing.T) {
	l := newTestLedger(t)
	assert.Empty(t, l.TrialBalance())
}

func TestTrialBalanceAggregatesPerAccount(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5110, 1000, "30.00")
	post(t, l, 5110, 1000, "20.00")
	post(t, l, 1000, 4000, "100.00")

	tb := l.TrialBalance()
	require.Len(t, tb, 3)

	// 1000: debit 100, credit 50 -> TB debit 50.
	assert.Equal(t, 1000, tb[0].AccountCode)
	assert.True(t, tb[0].Debit.Equal(dec("100.00")))
	assert.True(t, tb[0].Credit.Equal(dec("50.00")))
	assert.True(t, tb[0].TBDebit.Equal(dec("50.00")))
	assert.True(t, tb[0].TBCredit.IsZero())

	assert.Equal(t, 4000, tb[1].AccountCode)
	assert.True(t, tb[1].TBCredit.Equal(dec("100.00")))

	assert.Equal(t, 5110, tb[2].AccountCode)
	assert.True(t, tb[2].TBDebit.Equal(dec("50.00")))
}

func TestReset(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 4000, "100.00")
	require.Equal(t, 2, l.Len())

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.TrialBalance())
	assert.Empty(t, l.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, 5000, 4000, "100.00")

	lines := l.Lines()
	lines[0].AccountCode = 1234

	assert.Equal(t, 5000, l.Lines()[0].AccountCode)
}

func TestRestoreValidSnapshot(t *testing.T) {
	src := newTestLedger(t)
	post(t, src, 5000, 4000, "100.00")
	post(t, src, 5110, 1000, "57.50")

	dst := newTestLedger(t)
	require.NoError(t, dst.Restore(src.Lines()))
	assert.Equal(t, 4, dst.Len())
	assertBalanced(t, dst)
}

func TestRestoreRejectsUnbalancedSnapshot(t *testing.T) {
	l := newTestLedger(t)
	bad := []model.JournalLine{
		{Date: testDate(), AccountCode: 5000, Debit: dec("100.00")},
	}
	err := l.Restore(bad)
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
}
