// Package classify produces account/VAT suggestions for candidate
// transactions from keyword rules. Suggestion quality is best-effort;
// everything it emits goes through human review before posting.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/model"
)

const (
	keywordConfidence  = 0.75
	fallbackConfidence = 0.55
	interestConfidence = 0.95
)

// Rule maps a description pattern to a chart account by name.
type Rule struct {
	Pattern    string  `yaml:"pattern"`
	Account    string  `yaml:"account"`
	VATCode    string  `yaml:"vat_code,omitempty"`   // defaults to STD
	Confidence float64 `yaml:"confidence,omitempty"` // defaults to 0.75
}

type compiledRule struct {
	re          *regexp.Regexp
	accountName string
	accountCode int
	vatCode     model.VATCode
	confidence  float64
}

// Classifier suggests postings for transactions. Rules are tried in
// order; the first match wins.
type Classifier struct {
	chart *chart.Chart
	rules []compiledRule
}

// New creates a Classifier with the built-in rule table.
func New(c *chart.Chart) *Classifier {
	cl, err := NewWithRules(c, DefaultRules())
	if err != nil {
		// The built-in table is known to compile and resolve.
		panic(err)
	}
	return cl
}

// NewWithRules creates a Classifier from an explicit rule list. Rules
// naming accounts missing from the chart, or with invalid patterns or
// VAT codes, are configuration errors.
func NewWithRules(c *chart.Chart, rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compiling pattern %q: %w", i+1, r.Pattern, err)
		}
		code, ok := c.ByName(r.Account)
		if !ok {
			return nil, fmt.Errorf("rule %d: account %q not in chart", i+1, r.Account)
		}
		vatCode := model.VATStandard
		if r.VATCode != "" {
			vatCode, ok = model.ParseVATCode(r.VATCode)
			if !ok {
				return nil, fmt.Errorf("rule %d: invalid vat code %q", i+1, r.VATCode)
			}
		}
		confidence := r.Confidence
		if confidence == 0 {
			confidence = keywordConfidence
		}
		compiled = append(compiled, compiledRule{
			re:          re,
			accountName: r.Account,
			accountCode: code,
			vatCode:     vatCode,
			confidence:  confidence,
		})
	}
	return &Classifier{chart: c, rules: compiled}, nil
}

// Classify suggests an account and VAT treatment for one transaction.
// It never fails; low-confidence fallbacks cover everything the rules
// miss. The transaction's amount sign is read, never modified.
func (cl *Classifier) Classify(txn model.Transaction) model.Suggestion {
	desc := strings.ToLower(txn.Description)

	if strings.Contains(desc, "interest") && txn.Amount.IsPositive() {
		code, _ := cl.chart.ByName("Interest Received")
		return model.Suggestion{
			AccountCode: code,
			VATCode:     model.VATExempt,
			Confidence:  interestConfidence,
			Reason:      "Keyword match: interest received (exempt)",
			LinkRef:     txn.Reference,
		}
	}

	for _, r := range cl.rules {
		if r.re.MatchString(desc) {
			return model.Suggestion{
				AccountCode: r.accountCode,
				VATCode:     r.vatCode,
				Confidence:  r.confidence,
				Reason:      "Keyword match: " + r.accountName,
				LinkRef:     txn.Reference,
			}
		}
	}

	if txn.Amount.IsPositive() {
		code, _ := cl.chart.ByName("Sales Revenue")
		return model.Suggestion{
			AccountCode: code,
			VATCode:     model.VATStandard,
			Confidence:  fallbackConfidence,
			Reason:      "Fallback: positive amount assumed revenue",
			LinkRef:     txn.Reference,
		}
	}
	code, _ := cl.chart.ByName("Cost of Sales")
	return model.Suggestion{
		AccountCode: code,
		VATCode:     model.VATStandard,
		Confidence:  fallbackConfidence,
		Reason:      "Fallback: negative amount assumed expense",
		LinkRef:     txn.Reference,
	}
}

// DefaultRules is the built-in keyword table.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `\b(bank\s?charges|monthly\s?fee|service\s?fee)\b`, Account: "Bank Charges"},
		{Pattern: `\b(fuel|garage|shell|total|engen|bp)\b`, Account: "Fuel Expense"},
		{Pattern: `\b(airtime|data|vodacom|mtn|cell c|telkom)\b`, Account: "Telephone & Internet"},
		{Pattern: `\b(rent|lease)\b`, Account: "Rent Expense"},
		{Pattern: `\b(salary|wages|payroll)\b`, Account: "Salaries & Wages"},
		{Pattern: `\b(repairs?|maintenance)\b`, Account: "Repairs & Maintenance"},
		{Pattern: `\b(stationery|ink|paper|office)\b`, Account: "Office Supplies"},
		{Pattern: `\b(interest\s+received)\b`, Account: "Interest Received", VATCode: "EXEMPT"},
		{Pattern: `\b(payment\s+from|deposit|received)\b`, Account: "Sales Revenue"},
		{Pattern: `\b(sales|invoice)\b`, Account: "Sales Revenue"},
		{Pattern: `\b(shoprite|pick ?n ?pay|spar|checkers|woolworths)\b`, Account: "Cost of Sales"},
	}
}
