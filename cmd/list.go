package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/grovetools/plenary/internal/display"
	"github.com/grovetools/plenary/internal/session"
	"github.com/grovetools/plenary/internal/transcript"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool
	var input string
	var sessionFilter string

	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List the sessions of a session table",
		Long:  "List the sessions of a session table with their text length and the number of speaker markers found, optionally filtered by session id or document number",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := session.ResolveInputs(input)
			if err != nil {
				return err
			}

			patterns := transcript.DefaultPatterns()
			scanner := session.NewScanner()
			var sessions []session.Summary
			for _, p := range paths {
				records, err := scanner.ScanFile(p)
				if err != nil {
					return fmt.Errorf("failed to scan sessions: %w", err)
				}
				for _, r := range records {
					if sessionFilter != "" &&
						!strings.Contains(strings.ToLower(r.SessionID), strings.ToLower(sessionFilter)) &&
						!strings.Contains(strings.ToLower(r.DocumentID), strings.ToLower(sessionFilter)) {
						continue
					}
					hits := transcript.CountBoundaries(patterns, r.Text)
					total := 0
					for _, n := range hits {
						total += n
					}
					sessions = append(sessions, session.Summary{
						SessionID:  r.SessionID,
						DocumentID: r.DocumentID,
						Date:       r.Date,
						Chars:      len([]rune(r.Text)),
						Boundaries: total,
						Hits:       hits,
						SourcePath: p,
					})
				}
			}

			if len(sessions) == 0 {
				if sessionFilter != "" {
					fmt.Printf("No sessions found matching '%s'\n", sessionFilter)
				} else {
					fmt.Println("No sessions found")
				}
				return nil
			}

			// Most recent sessions first
			sort.SliceStable(sessions, func(i, j int) bool {
				return sessions[i].Date > sessions[j].Date
			})

			if jsonOutput {
				data, err := json.MarshalIndent(sessions, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal sessions to JSON: %w", err)
				}
				fmt.Println(string(data))
			} else {
				display.PrintSessionsTable(sessions, os.Stdout)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&input, "input", "i", "data/plenarprotokolle.csv", "Session table CSV file or directory of CSV files")
	cmd.Flags().StringVarP(&sessionFilter, "session", "s", "", "Filter by session id or document number (case-insensitive substring match)")

	return cmd
}
