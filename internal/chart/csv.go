package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/postbook-dev/postbook/internal/model"
)

const (
	numFields = 3
	colCode   = 0
	colName   = 1
	colType   = 2
)

// ReadAccounts reads a chart-of-accounts CSV (code,name,type with header).
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes a chart-of-accounts CSV.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "account_name", "account_type"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = strconv.Itoa(acct.Code)
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code, err := strconv.Atoi(record[colCode])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_code %q: %w", record[colCode], err)
	}

	switch t := model.AccountType(record[colType]); t {
	case model.AccountTypeAsset, model.AccountTypeLiability, model.AccountTypeEquity,
		model.AccountTypeRevenue, model.AccountTypeExpense:
		return model.Account{Code: code, Name: record[colName], Type: t}, nil
	default:
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}
}

// Load reads a chart CSV from disk and constructs a validated Chart.
func Load(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return New(accts)
}

// Save writes the chart to a CSV file.
func (c *Chart) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, c.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
