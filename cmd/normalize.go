package cmd

import (
	"context"
	"fmt"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/store"
	"github.com/grovetools/plenary/internal/table"
	"github.com/spf13/cobra"
)

var ulogNormalize = grovelogging.NewUnifiedLogger("plenary.cmd.normalize")

func newNormalizeCmd() *cobra.Command {
	var flags pipelineFlags
	var input, output string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Turn a fragment table into the final speech table",
		Long:  "Deduplicates fragments, resolves parties, fills default positions, filters non-plenary and noise rows and numbers the resulting speeches.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			opts, err := normalizeOptions(cfg)
			if err != nil {
				return err
			}

			frags, err := table.ReadFragmentsFile(input)
			if err != nil {
				return fmt.Errorf("failed to load fragments: %w", err)
			}

			speeches, stats := speech.NewNormalizer(opts).Normalize(frags)
			if err := saveSpeeches(ctx, output, cfg.Output.DBPath, speeches); err != nil {
				return err
			}

			if !quiet {
				display.PrintNormalizeStats(stats, os.Stdout)
			}
			ulogNormalize.Info("Speeches written").
				Field("fragments", len(frags)).
				Field("speeches", len(speeches)).
				Field("output", output).
				Pretty(fmt.Sprintf("\n%d speeches saved to %s\n", len(speeches), output)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/fragments.csv", "Fragment table produced by 'segment'")
	cmd.Flags().StringVarP(&output, "output", "o", "data/speeches.csv", "Speech table to write")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print step statistics")
	addConfigFlag(cmd, &flags)
	addNormalizeFlags(cmd, &flags)

	return cmd
}

// saveSpeeches replaces the CSV table at path and, when dbPath is set, the
// speeches stored in that database.
func saveSpeeches(ctx context.Context, path, dbPath string, speeches []speech.Speech) error {
	if err := table.WriteSpeechesFile(path, speeches); err != nil {
		return fmt.Errorf("failed to write speeches: %w", err)
	}
	if dbPath == "" {
		return nil
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open speech store: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceSpeeches(ctx, speeches); err != nil {
		return fmt.Errorf("failed to store speeches: %w", err)
	}
	return nil
}
