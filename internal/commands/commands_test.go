package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook-dev/postbook/internal/chart"
)

func TestInitCreatesBooks(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir, "Acme Trading"))

	for _, f := range []string{configFile, chartFile, rulesFile} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	p, err := loadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading", p.config.Business.Name)
	assert.Equal(t, chart.CodeBank, p.config.Ledger.CashAccount)
}

func TestPostPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Acme Trading"))

	err := runPost(dir, "2024-03-01", chart.CodeCostOfSales, chart.CodeBank,
		"115.00", "Stock purchase", "STD", "inv-001", "manual")
	require.NoError(t, err)

	p, err := loadProject(dir)
	require.NoError(t, err)
	l, s, err := p.openLedger()
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 2, l.Len())
	lines := l.Lines()
	assert.Equal(t, chart.CodeCostOfSales, lines[0].AccountCode)
	assert.True(t, lines[0].Debit.Equal(lines[1].Credit))
	assert.Equal(t, "inv-001", lines[0].LinkRef)
	assert.Equal(t, "15.00", lines[0].VATAmount.StringFixed(2))
}

func TestLoadProjectMissingConfig(t *testing.T) {
	_, err := loadProject(t.TempDir())
	require.Error(t, err)
}

func TestResetClearsLedgerAndStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Acme Trading"))
	require.NoError(t, runPost(dir, "2024-03-01", chart.CodeCostOfSales, chart.CodeBank,
		"50.00", "Stock", "NONE", "", ""))

	require.NoError(t, runReset(dir))

	p, err := loadProject(dir)
	require.NoError(t, err)
	l, s, err := p.openLedger()
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 0, l.Len())
}
