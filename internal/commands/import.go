package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/postbook-dev/postbook/internal/classify"
	"github.com/postbook-dev/postbook/internal/ingest"
	"github.com/postbook-dev/postbook/internal/review"
)

func newImportCommand() *cobra.Command {
	var repoDir string
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Classify and post a bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(absDir, args[0], format, dryRun)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "books directory")
	cmd.Flags().StringVar(&format, "format", "standard", "statement format (standard, fnb)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and report without posting")

	return cmd
}

func runImport(root, statementPath, format string, dryRun bool) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	parser := ingest.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	f, err := os.Open(statementPath)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}
	if len(txns) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	classifier, err := projectClassifier(p)
	if err != nil {
		return err
	}

	candidates := make([]review.Candidate, len(txns))
	for i, txn := range txns {
		candidates[i] = review.Candidate{
			Transaction: txn,
			Suggestion:  classifier.Classify(txn),
		}
	}

	if dryRun {
		fmt.Printf("%d transaction(s) classified (dry run, nothing posted):\n", len(candidates))
		for _, c := range candidates {
			acct, _ := p.chart.ByCode(c.Suggestion.AccountCode)
			fmt.Printf("  %s  %10s  %-30s -> %d %s (%s, %.2f)\n",
				c.Transaction.Date.Format("2006-01-02"),
				c.Transaction.Amount.StringFixed(2),
				c.Transaction.Description,
				c.Suggestion.AccountCode, acct.Name,
				c.Suggestion.VATCode, c.Suggestion.Confidence)
		}
		return nil
	}

	l, s, err := p.openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	poster := review.NewPoster(l, p.config.Ledger.CashAccount, review.Thresholds{
		AutoConfirm: p.config.Thresholds.AutoConfirm,
		ReviewFlag:  p.config.Thresholds.ReviewFlag,
	}, nil)

	before := l.Len()
	result := poster.PostBatch(candidates)

	// Persist only what this batch appended.
	if err := s.AppendLines(l.Lines()[before:]); err != nil {
		return fmt.Errorf("persisting batch: %w", err)
	}

	fmt.Printf("Batch %s: posted %d, needs review %d, skipped %d\n",
		result.BatchID, result.Posted, len(result.NeedsReview), len(result.SkippedRows))
	for _, c := range result.NeedsReview {
		fmt.Printf("  review: %s %s %q (%s, confidence %.2f)\n",
			c.Transaction.Date.Format("2006-01-02"),
			c.Transaction.Amount.StringFixed(2),
			c.Transaction.Description,
			c.Suggestion.Reason, c.Suggestion.Confidence)
	}
	for _, skip := range result.SkippedRows {
		fmt.Printf("  skipped %s: %v\n", skip.Reference, skip.Err)
	}
	return nil
}

// projectClassifier builds a classifier from the project's rules file,
// falling back to the built-in table if the file is absent.
func projectClassifier(p *project) (*classify.Classifier, error) {
	path := filepath.Join(p.root, rulesFile)
	rules, err := classify.LoadRules(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return classify.New(p.chart), nil
		}
		return nil, err
	}
	if len(rules) == 0 {
		return classify.New(p.chart), nil
	}
	return classify.NewWithRules(p.chart, rules)
}
