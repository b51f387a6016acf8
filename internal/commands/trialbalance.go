package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/postbook-dev/postbook/internal/export"
)

func newTrialBalanceCommand() *cobra.Command {
	var repoDir string
	var csvPath string
	var journalPath string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runTrialBalance(absDir, csvPath, journalPath)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "books directory")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export the trial balance to a CSV file")
	cmd.Flags().StringVar(&journalPath, "journal-csv", "", "also export the full journal to a CSV file")

	return cmd
}

func runTrialBalance(root, csvPath, journalPath string) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}
	l, s, err := p.openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	rows := l.TrialBalance()
	if len(rows) == 0 {
		fmt.Println("Ledger is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tACCOUNT\tTYPE\tDEBIT\tCREDIT")
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.TBDebit)
		totalCredit = totalCredit.Add(row.TBCredit)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.AccountCode, row.AccountName, row.AccountType,
			row.TBDebit.StringFixed(2), row.TBCredit.StringFixed(2))
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\n", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	if err := w.Flush(); err != nil {
		return err
	}

	if csvPath != "" {
		if err := export.TrialBalanceToFile(csvPath, rows); err != nil {
			return err
		}
		fmt.Printf("Trial balance exported to %s\n", csvPath)
	}
	if journalPath != "" {
		if err := export.JournalToFile(journalPath, l.Lines()); err != nil {
			return err
		}
		fmt.Printf("Journal exported to %s\n", journalPath)
	}
	return nil
}
