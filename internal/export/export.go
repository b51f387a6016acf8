// Package export renders read-only ledger snapshots as CSV files for
// downstream reporting tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/postbook-dev/postbook/internal/model"
)

const dateFormat = "2006-01-02"

var trialBalanceHeader = []string{
	"account_code", "account_name", "account_type", "debit", "credit", "tb_debit", "tb_credit",
}

var journalHeader = []string{
	"date", "account_code", "debit", "credit", "memo", "vat_code",
	"vat_amount", "link_ref", "created_by", "confidence", "reason",
}

// WriteTrialBalance writes trial balance rows as CSV.
func WriteTrialBalance(w io.Writer, rows []model.TrialBalanceRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(trialBalanceHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		rec := []string{
			strconv.Itoa(row.AccountCode),
			row.AccountName,
			string(row.AccountType),
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
			row.TBDebit.StringFixed(2),
			row.TBCredit.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteJournal writes journal lines as CSV in audit order.
func WriteJournal(w io.Writer, lines []model.JournalLine) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(journalHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, line := range lines {
		rec := []string{
			line.Date.Format(dateFormat),
			strconv.Itoa(line.AccountCode),
			line.Debit.StringFixed(2),
			line.Credit.StringFixed(2),
			line.Memo,
			string(line.VATCode),
			line.VATAmount.StringFixed(2),
			line.LinkRef,
			string(line.CreatedBy),
			strconv.FormatFloat(line.Confidence, 'f', -1, 64),
			line.Reason,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// TrialBalanceToFile writes the trial balance CSV to path.
func TrialBalanceToFile(path string, rows []model.TrialBalanceRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trial balance file: %w", err)
	}
	defer f.Close()
	return WriteTrialBalance(f, rows)
}

// JournalToFile writes the journal CSV to path.
func JournalToFile(path string, lines []model.JournalLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal file: %w", err)
	}
	defer f.Close()
	return WriteJournal(f, lines)
}
