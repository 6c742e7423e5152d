package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/report"
	"github.com/grovetools/plenary/internal/table"
	"github.com/spf13/cobra"
)

var ulogReport = grovelogging.NewUnifiedLogger("plenary.cmd.report")

func newReportCmd() *cobra.Command {
	var input, outputFolder string
	var bins int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Evaluate a speech table",
		Long:  "Computes word count statistics, distinct parties and positions and a word count histogram for a speech table and saves evaluation_report.txt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			speeches, err := table.ReadSpeechesFile(input)
			if err != nil {
				return err
			}
			r := report.Build(speeches, bins)

			if err := os.MkdirAll(outputFolder, 0755); err != nil {
				return fmt.Errorf("failed to create output folder: %w", err)
			}
			reportPath := filepath.Join(outputFolder, "evaluation_report.txt")
			f, err := os.Create(reportPath)
			if err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			if err := r.WriteText(f); err != nil {
				f.Close()
				return fmt.Errorf("failed to write report: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal report: %w", err)
				}
				fmt.Println(string(data))
			} else {
				display.PrintReport(r, os.Stdout)
			}

			ulogReport.Info("Report saved").
				Field("speeches", r.Rows).
				Field("path", reportPath).
				Pretty(fmt.Sprintf("\nEvaluation report saved to %s\n", reportPath)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/speeches.csv", "Speech table to evaluate")
	cmd.Flags().StringVarP(&outputFolder, "output-folder", "o", "data/evaluation", "Folder for evaluation_report.txt")
	cmd.Flags().IntVar(&bins, "bins", report.DefaultBins, "Number of histogram buckets")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
