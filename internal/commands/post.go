package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/postbook-dev/postbook/internal/ledger"
	"github.com/postbook-dev/postbook/internal/model"
	"github.com/postbook-dev/postbook/internal/vat"
)

func newPostCommand() *cobra.Command {
	var repoDir string
	var dateStr string
	var debitAccount int
	var creditAccount int
	var amountStr string
	var memo string
	var vatCodeStr string
	var linkRef string
	var reason string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a manual double-entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runPost(absDir, dateStr, debitAccount, creditAccount, amountStr,
				memo, vatCodeStr, linkRef, reason)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "books directory")
	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "posting date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&debitAccount, "debit", 0, "debit account code (required)")
	cmd.Flags().IntVar(&creditAccount, "credit", 0, "credit account code (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&memo, "memo", "", "memo")
	cmd.Flags().StringVar(&vatCodeStr, "vat", "NONE", "VAT code (STD, ZERO, EXEMPT, NONE)")
	cmd.Flags().StringVar(&linkRef, "ref", "", "link reference")
	cmd.Flags().StringVar(&reason, "reason", "", "reason")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPost(root, dateStr string, debitAccount, creditAccount int, amountStr, memo, vatCodeStr, linkRef, reason string) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", dateStr, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	vatCode, ok := model.ParseVATCode(vatCodeStr)
	if !ok {
		fmt.Printf("Warning: unrecognized VAT code %q, using NONE\n", vatCodeStr)
	}
	vatAmount, _ := vat.Compute(amount.Abs(), vatCode)

	l, s, err := p.openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	before := l.Len()
	err = l.PostDoubleEntry(ledger.PostParams{
		Date:          date,
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Amount:        amount,
		Memo:          memo,
		LinkRef:       linkRef,
		CreatedBy:     model.OriginHuman,
		VATCode:       vatCode,
		VATAmount:     vatAmount,
		Confidence:    1,
		Reason:        reason,
	})
	if err != nil {
		return err
	}

	if l.Len() == before {
		fmt.Println("Amount rounds to 0.00, nothing posted.")
		return nil
	}
	if err := s.AppendLines(l.Lines()[before:]); err != nil {
		return fmt.Errorf("persisting posting: %w", err)
	}

	fmt.Printf("Posted %s: debit %d / credit %d\n", amount.Round(2).StringFixed(2), debitAccount, creditAccount)
	return nil
}
