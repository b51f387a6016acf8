package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/postbook-dev/postbook/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Line        int // 1-based ledger position, 0 for ledger-wide checks
	Description string
}

func (e ValidationError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invariant %d: %s", e.Invariant, e.Description)
	}
	return fmt.Sprintf("invariant %d [line %d]: %s", e.Invariant, e.Line, e.Description)
}

var hundred = decimal.NewFromInt(100)

// ValidateLines enforces the ledger invariants on an ordered snapshot:
//
//  1. ledger-wide debits equal credits
//  2. every line has exactly one nonzero side, and neither side negative
//  3. every account code resolves in the chart
//  4. no amount carries more than 2 decimal places
//  5. lines come in adjacent debit/credit pairs of equal amount sharing
//     their pair-level metadata
func ValidateLines(lines []model.JournalLine, accounts AccountResolver) []ValidationError {
	var errs []ValidationError

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)

		hasDebit := !line.Debit.IsZero()
		hasCredit := !line.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Line:        i + 1,
				Description: "line must have exactly one of debit or credit",
			})
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Line:        i + 1,
				Description: "debit and credit must not be negative",
			})
		}

		if _, ok := accounts.ByCode(line.AccountCode); !ok {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Line:        i + 1,
				Description: fmt.Sprintf("unknown account %d", line.AccountCode),
			})
		}

		for _, amt := range []decimal.Decimal{line.Debit, line.Credit} {
			if !amt.IsZero() && !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
				errs = append(errs, ValidationError{
					Invariant:   4,
					Line:        i + 1,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", amt),
				})
			}
		}
	}

	if !totalDebit.Equal(totalCredit) {
		errs = append(errs, ValidationError{
			Invariant: 1,
			Description: fmt.Sprintf("debits (%s) != credits (%s)",
				totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	if len(lines)%2 != 0 {
		errs = append(errs, ValidationError{
			Invariant:   5,
			Description: fmt.Sprintf("odd line count %d, lines must form pairs", len(lines)),
		})
		return errs
	}
	for i := 0; i+1 < len(lines); i += 2 {
		d, c := lines[i], lines[i+1]
		switch {
		case d.Debit.IsZero() || !d.Credit.IsZero():
			errs = append(errs, ValidationError{
				Invariant:   5,
				Line:        i + 1,
				Description: "first line of pair must be the debit side",
			})
		case c.Credit.IsZero() || !c.Debit.IsZero():
			errs = append(errs, ValidationError{
				Invariant:   5,
				Line:        i + 2,
				Description: "second line of pair must be the credit side",
			})
		case !d.Debit.Equal(c.Credit):
			errs = append(errs, ValidationError{
				Invariant:   5,
				Line:        i + 1,
				Description: fmt.Sprintf("pair does not balance: debit %s vs credit %s", d.Debit, c.Credit),
			})
		case !d.Date.Equal(c.Date) || d.Memo != c.Memo || d.LinkRef != c.LinkRef ||
			d.VATCode != c.VATCode || !d.VATAmount.Equal(c.VATAmount) ||
			d.CreatedBy != c.CreatedBy ||
			d.Confidence != c.Confidence || d.Reason != c.Reason:
			errs = append(errs, ValidationError{
				Invariant:   5,
				Line:        i + 1,
				Description: "pair metadata diverges between debit and credit line",
			})
		}
	}

	return errs
}

// Validate runs ValidateLines over the ledger's current contents.
func (l *Ledger) Validate() []ValidationError {
	return ValidateLines(l.Lines(), l.accounts)
}
