// Package ledger holds the double-entry posting core: an ordered journal,
// the balanced-pair posting rule, and the trial balance derivation.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

// AccountResolver resolves account codes against the chart of accounts.
type AccountResolver interface {
	ByCode(code int) (model.Account, bool)
}

// Ledger is an ordered, append-only collection of journal lines.
// Insertion order is the audit order. Lines are only ever added two at a
// time, as a balanced debit/credit pair, so the whole ledger always sums
// to zero. The mutex makes a pair visible to readers all-or-nothing.
type Ledger struct {
	mu       sync.Mutex
	accounts AccountResolver
	lines    []model.JournalLine
}

// New creates an empty ledger backed by the given chart of accounts.
func New(accounts AccountResolver) *Ledger {
	return &Ledger{accounts: accounts}
}

// PostParams holds the inputs for one double-entry posting. Memo, VAT
// fields, LinkRef, CreatedBy, Confidence and Reason are pair-level
// metadata stamped identically onto both lines.
type PostParams struct {
	Date          time.Time
	DebitAccount  int
	CreditAccount int
	Amount        decimal.Decimal
	Memo          string
	LinkRef       string
	CreatedBy     model.Origin
	VATCode       model.VATCode
	VATAmount     decimal.Decimal
	Confidence    float64
	Reason        string
}

// PostDoubleEntry posts one balanced debit/credit pair.
//
// The amount is rounded to 2 decimal places first. A rounded amount of
// exactly 0.00 posts nothing and returns nil. Both account codes must
// resolve in the chart; otherwise an *UnknownAccountError is returned and
// the ledger is untouched. On success exactly two lines are appended
// atomically: the debit line first, then the credit line.
func (l *Ledger) PostDoubleEntry(p PostParams) error {
	amount := p.Amount.Round(2)
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if amount.IsZero() {
		return nil
	}

	if _, ok := l.accounts.ByCode(p.DebitAccount); !ok {
		return &UnknownAccountError{Code: p.DebitAccount}
	}
	if _, ok := l.accounts.ByCode(p.CreditAccount); !ok {
		return &UnknownAccountError{Code: p.CreditAccount}
	}

	debit := model.JournalLine{
		Date:        p.Date,
		AccountCode: p.DebitAccount,
		Debit:       amount,
		Memo:        p.Memo,
		VATCode:     p.VATCode,
		VATAmount:   p.VATAmount,
		LinkRef:     p.LinkRef,
		CreatedBy:   p.CreatedBy,
		Confidence:  p.Confidence,
		Reason:      p.Reason,
	}
	credit := model.JournalLine{
		Date:        p.Date,
		AccountCode: p.CreditAccount,
		Credit:      amount,
		Memo:        p.Memo,
		VATCode:     p.VATCode,
		VATAmount:   p.VATAmount,
		LinkRef:     p.LinkRef,
		CreatedBy:   p.CreatedBy,
		Confidence:  p.Confidence,
		Reason:      p.Reason,
	}

	l.mu.Lock()
	l.lines = append(l.lines, debit, credit)
	l.mu.Unlock()
	return nil
}

// Lines returns a snapshot of all journal lines in audit order.
func (l *Ledger) Lines() []model.JournalLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.JournalLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of journal lines.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Reset removes every journal line. Irreversible; confirmation is the
// calling boundary's responsibility.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.lines = nil
	l.mu.Unlock()
}

// Restore replaces the ledger contents with a snapshot loaded from
// storage. The snapshot bypasses the posting path, so it is re-validated
// first; an invalid snapshot leaves the ledger unchanged.
func (l *Ledger) Restore(lines []model.JournalLine) error {
	if verrs := ValidateLines(lines, l.accounts); len(verrs) > 0 {
		return fmt.Errorf("restoring ledger: %w", verrs[0])
	}
	replacement := make([]model.JournalLine, len(lines))
	copy(replacement, lines)

	l.mu.Lock()
	l.lines = replacement
	l.mu.Unlock()
	return nil
}

// Totals returns the ledger-wide debit and credit sums.
func (l *Ledger) Totals() (debit, credit decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// TrialBalance derives the per-account summary, recomputed from the full
// ledger on every call and ordered ascending by account code. An empty
// ledger yields an empty result.
func (l *Ledger) TrialBalance() []model.TrialBalanceRow {
	l.mu.Lock()
	defer l.mu.Unlock()

	type sums struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byAccount := make(map[int]*sums)
	var codes []int
	for _, line := range l.lines {
		s, ok := byAccount[line.AccountCode]
		if !ok {
			s = &sums{}
			byAccount[line.AccountCode] = s
			codes = append(codes, line.AccountCode)
		}
		s.debit = s.debit.Add(line.Debit)
		s.credit = s.credit.Add(line.Credit)
	}
	sort.Ints(codes)

	rows := make([]model.TrialBalanceRow, 0, len(codes))
	for _, code := range codes {
		s := byAccount[code]
		balance := s.debit.Sub(s.credit)

		tbDebit := decimal.Zero
		tbCredit := decimal.Zero
		if balance.IsPositive() {
			tbDebit = balance
		} else if balance.IsNegative() {
			tbCredit = balance.Neg()
		}

		row := model.TrialBalanceRow{
			AccountCode: code,
			Debit:       s.debit,
			Credit:      s.credit,
			TBDebit:     tbDebit,
			TBCredit:    tbCredit,
		}
		if acct, ok := l.accounts.ByCode(code); ok {
			row.AccountName = acct.Name
			row.AccountType = acct.Type
		}
		rows = append(rows, row)
	}
	return rows
}
