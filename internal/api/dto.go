package api

// PostPostingReq is the JSON body for POST /api/v1/ledger/postings.
// Amount is a string to avoid float precision loss in transit.
type PostPostingReq struct {
	Date          string   `json:"date" binding:"required"` // YYYY-MM-DD
	DebitAccount  int      `json:"debit_account" binding:"required"`
	CreditAccount int      `json:"credit_account" binding:"required"`
	Amount        string   `json:"amount" binding:"required"`
	Memo          string   `json:"memo"`
	VATCode       string   `json:"vat_code"`
	LinkRef       string   `json:"link_ref"`
	CreatedBy     string   `json:"created_by"` // "AI" or "Human", default "Human"
	Confidence    *float64 `json:"confidence"` // absent means 1; an explicit 0 is kept
	Reason        string   `json:"reason"`
}

// PostPostingResp reports the outcome of a posting request.
type PostPostingResp struct {
	Posted     bool   `json:"posted"` // false for a zero-amount no-op
	LedgerSize int    `json:"ledger_size"`
	VATAmount  string `json:"vat_amount"`
	Warning    string `json:"warning,omitempty"` // e.g. unrecognized VAT code
}

// TrialBalanceRowResp is one row of GET /api/v1/ledger/trial-balance.
type TrialBalanceRowResp struct {
	AccountCode int    `json:"account_code"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	TBDebit     string `json:"tb_debit"`
	TBCredit    string `json:"tb_credit"`
}

// TrialBalanceResp is the trial balance with ledger-wide totals.
type TrialBalanceResp struct {
	Rows        []TrialBalanceRowResp `json:"rows"`
	TotalDebit  string                `json:"total_debit"`
	TotalCredit string                `json:"total_credit"`
}

// JournalLineResp is one journal line in audit order.
type JournalLineResp struct {
	Date        string  `json:"date"`
	AccountCode int     `json:"account_code"`
	Debit       string  `json:"debit"`
	Credit      string  `json:"credit"`
	Memo        string  `json:"memo"`
	VATCode     string  `json:"vat_code"`
	VATAmount   string  `json:"vat_amount"`
	LinkRef     string  `json:"link_ref"`
	CreatedBy   string  `json:"created_by"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
}
