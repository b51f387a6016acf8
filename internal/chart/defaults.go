package chart

import "github.com/postbook-dev/postbook/internal/model"

// Well-known codes referenced by the review and classification layers.
const (
	CodeBank            = 1000
	CodeDebtorsControl  = 1010
	CodeCreditorsContrl = 2000
	CodeSalesRevenue    = 4000
	CodeInterestRecv    = 4020
	CodeCostOfSales     = 5000
)

// Default returns the built-in chart of accounts. The table is known
// valid, so a construction failure here is a bug worth crashing on.
func Default() *Chart {
	c, err := New(DefaultAccounts())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultAccounts is the standard small-business chart.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{Code: 1000, Name: "Bank - Current Account", Type: model.AccountTypeAsset},
		{Code: 1010, Name: "Accounts Receivable (Debtors Control)", Type: model.AccountTypeAsset},
		{Code: 1020, Name: "Inventory", Type: model.AccountTypeAsset},
		{Code: 1030, Name: "VAT Input", Type: model.AccountTypeAsset},
		{Code: 1040, Name: "Prepayments", Type: model.AccountTypeAsset},
		{Code: 2000, Name: "Accounts Payable (Creditors Control)", Type: model.AccountTypeLiability},
		{Code: 2010, Name: "VAT Output", Type: model.AccountTypeLiability},
		{Code: 2020, Name: "Accruals", Type: model.AccountTypeLiability},
		{Code: 2030, Name: "Income Received in Advance", Type: model.AccountTypeLiability},
		{Code: 3000, Name: "Owner's Equity", Type: model.AccountTypeEquity},
		{Code: 3100, Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{Code: 4000, Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{Code: 4010, Name: "Other Income", Type: model.AccountTypeRevenue},
		{Code: 4020, Name: "Interest Received", Type: model.AccountTypeRevenue},
		{Code: 5000, Name: "Cost of Sales", Type: model.AccountTypeExpense},
		{Code: 5100, Name: "Bank Charges", Type: model.AccountTypeExpense},
		{Code: 5110, Name: "Fuel Expense", Type: model.AccountTypeExpense},
		{Code: 5120, Name: "Repairs & Maintenance", Type: model.AccountTypeExpense},
		{Code: 5130, Name: "Telephone & Internet", Type: model.AccountTypeExpense},
		{Code: 5140, Name: "Office Supplies", Type: model.AccountTypeExpense},
		{Code: 5150, Name: "Rent Expense", Type: model.AccountTypeExpense},
		{Code: 5160, Name: "Salaries & Wages", Type: model.AccountTypeExpense},
		{Code: 5170, Name: "Professional Fees", Type: model.AccountTypeExpense},
	}
}
