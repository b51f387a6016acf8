package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postbook-dev/postbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "postbook",
		Short:   "Double-entry bookkeeping with VAT-aware statement classification",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newTrialBalanceCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
