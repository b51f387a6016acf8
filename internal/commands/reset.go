package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newResetCommand() *cobra.Command {
	var repoDir string
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every journal line (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset is irreversible; re-run with --yes to confirm")
			}
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runReset(absDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "books directory")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}

func runReset(root string) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}
	l, s, err := p.openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	n := l.Len()
	l.Reset()
	if err := s.Clear(); err != nil {
		return fmt.Errorf("clearing journal store: %w", err)
	}

	fmt.Printf("Removed %d journal line(s).\n", n)
	return nil
}
