package cmd

import (
	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for plenary.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"plenary",
		"Parliamentary protocol segmentation and speech normalization",
	)

	rootCmd.AddCommand(newSegmentCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
