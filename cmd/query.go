package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/formatters"
	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/store"
	"github.com/grovetools/plenary/internal/table"
	"github.com/spf13/cobra"
)

var ulogQuery = grovelogging.NewUnifiedLogger("plenary.cmd.query")

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query speeches from a speech table or database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			input, _ := cmd.Flags().GetString("input")
			dbPath, _ := cmd.Flags().GetString("db")
			speaker, _ := cmd.Flags().GetString("speaker")
			party, _ := cmd.Flags().GetString("party")
			sessionID, _ := cmd.Flags().GetString("session")
			limit, _ := cmd.Flags().GetInt("limit")
			full, _ := cmd.Flags().GetBool("full")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			filter := store.Filter{Speaker: speaker, Party: party, SessionID: sessionID, Limit: limit}

			var speeches []speech.Speech
			var err error
			if dbPath != "" {
				speeches, err = querySpeechStore(ctx, dbPath, filter)
			} else {
				speeches, err = querySpeechTable(input, filter)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(speeches, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal speeches: %w", err)
				}
				ulogQuery.Info("Query results").
					Field("speech_count", len(speeches)).
					Field("speaker_filter", speaker).
					Field("party_filter", party).
					Pretty(string(data)).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			summaryMsg := fmt.Sprintf("Found %d speeches", len(speeches))
			if speaker != "" {
				summaryMsg += fmt.Sprintf(" by speakers matching '%s'", speaker)
			}
			if party != "" {
				summaryMsg += fmt.Sprintf(" of party '%s'", party)
			}
			summaryMsg += ":\n\n"

			ulogQuery.Info("Query results").
				Field("speech_count", len(speeches)).
				Field("speaker_filter", speaker).
				Field("party_filter", party).
				Pretty(summaryMsg).
				PrettyOnly().
				Log(ctx)

			if full {
				display.PrintSpeeches(speeches, formatters.FormatFullSpeech, os.Stdout)
			} else {
				display.PrintSpeechesTable(speeches, 12, os.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "data/speeches.csv", "Speech table to read")
	cmd.Flags().String("db", "", "Read from this SQLite speech store instead of the CSV table")
	cmd.Flags().String("speaker", "", "Filter by speaker name (case-insensitive substring)")
	cmd.Flags().String("party", "", "Filter by party label")
	cmd.Flags().StringP("session", "s", "", "Filter by session id")
	cmd.Flags().IntP("limit", "n", 0, "Show at most this many speeches")
	cmd.Flags().Bool("full", false, "Print full speech texts")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func querySpeechStore(ctx context.Context, dbPath string, filter store.Filter) ([]speech.Speech, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open speech store: %w", err)
	}
	defer db.Close()
	return db.ListSpeeches(ctx, filter)
}

// querySpeechTable applies filter to the CSV speech table at path, selecting
// the same rows as the store query.
func querySpeechTable(path string, filter store.Filter) ([]speech.Speech, error) {
	all, err := table.ReadSpeechesFile(path)
	if err != nil {
		return nil, err
	}

	var out []speech.Speech
	for _, s := range all {
		if !filter.Match(s) {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}
