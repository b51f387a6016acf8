// Package ingest turns bank statement exports into candidate
// transactions. Malformed rows are rejected here; the posting core only
// ever sees well-formed transactions.
package ingest

import (
	"io"
	"strings"

	"github.com/postbook-dev/postbook/internal/model"
)

// DefaultCurrency is stamped on every parsed transaction; the engine is
// single-currency.
const DefaultCurrency = "ZAR"

// Parser converts one statement format into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		formats = append(formats, k)
	}
	return formats
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StandardParser{})
	r.Register(&FNBParser{})
	return r
}
