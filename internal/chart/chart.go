package chart

import (
	"fmt"
	"strings"

	"github.com/postbook-dev/postbook/internal/model"
)

// ConfigurationError reports an invalid chart of accounts. It is a
// programmer/configuration fault detected at construction time and is
// meant to abort startup, not to be handled at runtime.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "chart configuration: " + e.Reason
}

// Chart is the fixed, read-only chart of accounts with lookups derived
// once at construction. It is never mutated after New returns.
type Chart struct {
	accounts []model.Account
	byCode   map[int]model.Account
	byName   map[string]int // lowercased name -> code
}

// New builds a Chart and fails fast on an empty table, duplicate codes,
// or case-insensitively duplicate names.
func New(accounts []model.Account) (*Chart, error) {
	if len(accounts) == 0 {
		return nil, &ConfigurationError{Reason: "empty chart of accounts"}
	}

	byCode := make(map[int]model.Account, len(accounts))
	byName := make(map[string]int, len(accounts))
	for _, a := range accounts {
		if a.Code <= 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("account code %d is not positive", a.Code)}
		}
		if _, dup := byCode[a.Code]; dup {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate account code %d", a.Code)}
		}
		name := strings.ToLower(a.Name)
		if _, dup := byName[name]; dup {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate account name %q", a.Name)}
		}
		byCode[a.Code] = a
		byName[name] = a.Code
	}
	return &Chart{accounts: accounts, byCode: byCode, byName: byName}, nil
}

// All returns every account in chart order.
func (c *Chart) All() []model.Account {
	return c.accounts
}

// ByCode returns the account with the given code.
func (c *Chart) ByCode(code int) (model.Account, bool) {
	a, ok := c.byCode[code]
	return a, ok
}

// ByName returns the code of the account with the given name
// (case-insensitive exact match only).
func (c *Chart) ByName(name string) (int, bool) {
	code, ok := c.byName[strings.ToLower(name)]
	return code, ok
}

// Exists reports whether an account code exists.
func (c *Chart) Exists(code int) bool {
	_, ok := c.byCode[code]
	return ok
}

// ByType returns all accounts of the given type.
func (c *Chart) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
