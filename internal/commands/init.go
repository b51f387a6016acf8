package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/postbook-dev/postbook/internal/chart"
	"github.com/postbook-dev/postbook/internal/classify"
	"github.com/postbook-dev/postbook/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	for _, d := range []string{"accounts", "rules", "import", "exports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := chart.Default().Save(filepath.Join(dir, chartFile)); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := classify.SaveRules(filepath.Join(dir, rulesFile), classify.DefaultRules()); err != nil {
		return fmt.Errorf("writing classification rules: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s\n", name, dir)
	return nil
}
