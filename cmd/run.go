package cmd

import (
	"context"
	"fmt"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/session"
	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/table"
	"github.com/grovetools/plenary/internal/transcript"
	"github.com/spf13/cobra"
)

var ulogRun = grovelogging.NewUnifiedLogger("plenary.cmd.run")

func newRunCmd() *cobra.Command {
	var flags pipelineFlags
	var input, output, fragmentsOut string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Segment and normalize in one pass",
		Long:  "Reads a session table and writes the final speech table, running segmentation and normalization in sequence.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			normOpts, err := normalizeOptions(cfg)
			if err != nil {
				return err
			}

			records, err := session.LoadAll(input)
			if err != nil {
				return fmt.Errorf("failed to load sessions: %w", err)
			}

			frags, segStats, err := transcript.NewSegmenter(segmentOptions(cfg)).SegmentAll(ctx, records)
			if err != nil {
				return fmt.Errorf("failed to segment sessions: %w", err)
			}
			if fragmentsOut != "" {
				if err := table.WriteFragmentsFile(fragmentsOut, frags); err != nil {
					return fmt.Errorf("failed to write fragments: %w", err)
				}
			}

			speeches, normStats := speech.NewNormalizer(normOpts).Normalize(frags)
			if err := saveSpeeches(ctx, output, cfg.Output.DBPath, speeches); err != nil {
				return err
			}

			if !quiet {
				display.PrintSegmentStats(segStats, os.Stdout)
				fmt.Println()
				display.PrintNormalizeStats(normStats, os.Stdout)
			}
			ulogRun.Info("Pipeline finished").
				Field("sessions", segStats.Sessions).
				Field("fragments", len(frags)).
				Field("speeches", len(speeches)).
				Field("output", output).
				Pretty(fmt.Sprintf("\n%d speeches from %d sessions saved to %s\n", len(speeches), segStats.Sessions, output)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/plenarprotokolle.csv", "Session table CSV file or directory of CSV files")
	cmd.Flags().StringVarP(&output, "output", "o", "data/speeches.csv", "Speech table to write")
	cmd.Flags().StringVar(&fragmentsOut, "fragments", "", "Also write the intermediate fragment table here")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print step statistics")
	addConfigFlag(cmd, &flags)
	addSegmentFlags(cmd, &flags)
	addNormalizeFlags(cmd, &flags)

	return cmd
}
