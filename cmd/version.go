package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plenary %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
