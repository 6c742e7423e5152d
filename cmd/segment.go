package cmd

import (
	"context"
	"fmt"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/session"
	"github.com/grovetools/plenary/internal/table"
	"github.com/grovetools/plenary/internal/transcript"
	"github.com/spf13/cobra"
)

var ulogSegment = grovelogging.NewUnifiedLogger("plenary.cmd.segment")

func newSegmentCmd() *cobra.Command {
	var flags pipelineFlags
	var input, output string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split protocol texts into speaker-attributed fragments",
		Long:  "Reads a session table (id, dokumentnummer, datum, text), splits every protocol at its speaker markers and writes the fragment table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}

			records, err := session.LoadAll(input)
			if err != nil {
				return fmt.Errorf("failed to load sessions: %w", err)
			}

			segmenter := transcript.NewSegmenter(segmentOptions(cfg))
			frags, stats, err := segmenter.SegmentAll(ctx, records)
			if err != nil {
				return fmt.Errorf("failed to segment sessions: %w", err)
			}

			if err := table.WriteFragmentsFile(output, frags); err != nil {
				return fmt.Errorf("failed to write fragments: %w", err)
			}

			if !quiet {
				display.PrintSegmentStats(stats, os.Stdout)
			}
			ulogSegment.Info("Fragments written").
				Field("sessions", stats.Sessions).
				Field("fragments", len(frags)).
				Field("output", output).
				Pretty(fmt.Sprintf("\n%d fragments from %d sessions saved to %s\n", len(frags), stats.Sessions, output)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/plenarprotokolle.csv", "Session table CSV file or directory of CSV files")
	cmd.Flags().StringVarP(&output, "output", "o", "data/fragments.csv", "Fragment table to write")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print step statistics")
	addConfigFlag(cmd, &flags)
	addSegmentFlags(cmd, &flags)

	return cmd
}
