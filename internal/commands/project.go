package commands

import (
	"fmt"
	"path/filepath"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/config"
	"github.com/postbook-dev/postbook/internal/ledger"
	"github.com/postbook-dev/postbook/internal/store"
)

const (
	configFile = "postbook.yaml"
	chartFile  = "accounts/chart-of-accounts.csv"
	rulesFile  = "rules/categorization-rules.yaml"
)

// project bundles everything a command needs to operate on one set of books.
type project struct {
	root   string
	config *config.Config
	chart  *chart.Chart
}

func loadProject(root string) (*project, error) {
	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configFile, err)
	}
	c, err := chart.Load(filepath.Join(root, chartFile))
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}
	return &project{root: root, config: cfg, chart: c}, nil
}

// openLedger opens the project's journal store and rehydrates the ledger
// from it.
func (p *project) openLedger() (*ledger.Ledger, *store.Store, error) {
	dbPath := p.config.Ledger.Database
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(p.root, dbPath)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal store: %w", err)
	}

	l := ledger.New(p.chart)
	lines, err := s.LoadLines()
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("loading journal: %w", err)
	}
	if err := l.Restore(lines); err != nil {
		s.Close()
		return nil, nil, err
	}
	return l, s, nil
}
