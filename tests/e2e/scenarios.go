package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// mockProtocols is a session table with one plenary session holding a chair
// turn, a member turn, a government turn and an unknown minister, plus one
// session whose document number marks it as non-plenary.
const mockProtocols = `id,dokumentnummer,datum,text
5001,20/101,2023-05-10,"Präsident Dr. Wolfgang Schäuble: Die Sitzung ist eröffnet. Max Mustermann (CDU/CSU): Sehr geehrte Damen und Herren, wir beraten heute den Haushalt (Beifall bei der CDU/CSU) und ich danke Ihnen für die Aufmerksamkeit. Angela Merkel, Bundeskanzlerin: Meine Damen und Herren, die Lage ist ernst und wir handeln entschlossen. Unknown Person, Bundesminister: Etwas wird gesagt und dann wird noch mehr gesagt."
5002,12345,2023-05-11,"Erika Beispiel (SPD): Dies ist eine Rede im Bundesrat mit genug Worten für den Filter."
`

// setupMockProtocols writes the mock session table into a fresh work directory.
func setupMockProtocols(ctx *harness.Context) error {
	workDir := ctx.NewDir("work")
	dataDir := filepath.Join(workDir, "data")
	if err := fs.CreateDir(dataDir); err != nil {
		return err
	}

	input := filepath.Join(dataDir, "plenarprotokolle.csv")
	if err := fs.WriteString(input, mockProtocols); err != nil {
		return fmt.Errorf("failed to write plenarprotokolle.csv: %w", err)
	}

	ctx.Set("work_dir", workDir)
	ctx.Set("input", input)
	ctx.Set("fragments", filepath.Join(dataDir, "fragments.csv"))
	ctx.Set("speeches", filepath.Join(dataDir, "speeches.csv"))
	return nil
}

// runPipeline produces the speech table used by the query and report scenarios.
func runPipeline(ctx *harness.Context) error {
	plenaryBinary, err := FindProjectBinary()
	if err != nil {
		return err
	}

	cmd := command.New(plenaryBinary, "run",
		"-i", ctx.GetString("input"),
		"-o", ctx.GetString("speeches"),
		"--min-words", "3",
		"-q")
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return assert.Equal(0, result.ExitCode, "plenary run should exit successfully")
}

// PlenaryListScenario tests the 'plenary list' command
func PlenaryListScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "plenary-list-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock session table", setupMockProtocols),
			harness.NewStep("Run 'plenary list'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "list", "-i", ctx.GetString("input"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if result.ExitCode != 0 {
					return fmt.Errorf("plenary list failed: %s", result.Stderr)
				}

				if err := assert.Contains(result.Stdout, "SESSION ID", "Should print table header"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "BOUNDARIES", "Should print boundaries column"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "20/101", "Should list document 20/101"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "12345", "Should list document 12345")
			}),
			harness.NewStep("Run 'plenary list --json'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "list", "-i", ctx.GetString("input"), "--json")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if result.ExitCode != 0 {
					return fmt.Errorf("plenary list --json failed: %s", result.Stderr)
				}

				var sessions []map[string]interface{}
				if err := json.Unmarshal([]byte(result.Stdout), &sessions); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				if err := assert.Equal(2, len(sessions), "Should list both sessions"); err != nil {
					return err
				}

				for _, session := range sessions {
					if _, ok := session["sessionId"]; !ok {
						return fmt.Errorf("missing sessionId field in JSON output")
					}
					if _, ok := session["boundaries"]; !ok {
						return fmt.Errorf("missing boundaries field in JSON output")
					}
				}

				// Newest first: session 5002 is dated one day later.
				if err := assert.Equal("5002", sessions[0]["sessionId"], "Newest session should come first"); err != nil {
					return err
				}
				return assert.Equal(float64(4), sessions[1]["boundaries"], "Session 5001 should have four markers")
			}),
			harness.NewStep("Run 'plenary list --session 20/'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "list", "-i", ctx.GetString("input"), "--session", "20/")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if result.ExitCode != 0 {
					return fmt.Errorf("plenary list --session failed: %s", result.Stderr)
				}

				if err := assert.Contains(result.Stdout, "20/101", "Should list document 20/101"); err != nil {
					return err
				}
				return assert.NotContains(result.Stdout, "12345", "Should not list document 12345")
			}),
		},
	}
}

// PlenaryPipelineScenario tests 'plenary segment' followed by 'plenary normalize'
func PlenaryPipelineScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "plenary-segment-normalize",
		Steps: []harness.Step{
			harness.NewStep("Setup mock session table", setupMockProtocols),
			harness.NewStep("Run 'plenary segment'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "segment",
					"-i", ctx.GetString("input"),
					"-o", ctx.GetString("fragments"),
					"--min-words", "3")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary segment should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "chair turns dropped", "Should print step statistics"); err != nil {
					return err
				}

				data, err := os.ReadFile(ctx.GetString("fragments"))
				if err != nil {
					return fmt.Errorf("fragment table not written: %w", err)
				}
				fragments := string(data)
				if err := assert.Contains(fragments, "session_id,document_id,date,speaker,party,doctor,role,text,wordcount", "Should write the fragment header"); err != nil {
					return err
				}
				if err := assert.Contains(fragments, "Max Mustermann", "Should keep the member turn"); err != nil {
					return err
				}
				if err := assert.NotContains(fragments, "Beifall", "Should strip parenthetical notes"); err != nil {
					return err
				}
				return assert.NotContains(fragments, "Schäuble", "Should drop the chair turn")
			}),
			harness.NewStep("Run 'plenary normalize'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "normalize",
					"-i", ctx.GetString("fragments"),
					"-o", ctx.GetString("speeches"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary normalize should exit successfully"); err != nil {
					return err
				}

				data, err := os.ReadFile(ctx.GetString("speeches"))
				if err != nil {
					return fmt.Errorf("speech table not written: %w", err)
				}
				speeches := string(data)
				if err := assert.Contains(speeches, "u_id,session_id,document_id,date,is_doctor,speaker,party,position,speech", "Should write the speech header"); err != nil {
					return err
				}
				if err := assert.Contains(speeches, "Angela Merkel,CDU/CSU,Bundeskanzlerin", "Should backfill the chancellor's party"); err != nil {
					return err
				}
				if err := assert.Contains(speeches, "Max Mustermann,CDU/CSU,Abgeordnete(r)", "Should default the member's position"); err != nil {
					return err
				}
				if err := assert.NotContains(speeches, "Unknown Person", "Should drop speakers without a party"); err != nil {
					return err
				}
				return assert.NotContains(speeches, "Erika Beispiel", "Should drop non-plenary documents")
			}),
		},
	}
}

// PlenaryRunScenario tests the combined 'plenary run' command with a speech store
func PlenaryRunScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "plenary-run-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock session table", setupMockProtocols),
			harness.NewStep("Run 'plenary run --db'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				dbPath := filepath.Join(ctx.GetString("work_dir"), "plenary.db")
				ctx.Set("db", dbPath)
				cmd := command.New(plenaryBinary, "run",
					"-i", ctx.GetString("input"),
					"-o", ctx.GetString("speeches"),
					"--min-words", "3",
					"--db", dbPath)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary run should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Segmentation", "Should print segmentation statistics"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Normalization", "Should print normalization statistics")
			}),
			harness.NewStep("Run 'plenary query --db'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "query", "--db", ctx.GetString("db"), "--json")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary query should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, `"speaker": "Angela Merkel"`, "Should read speeches back from the store"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, `"u_id": 2`, "Should number speeches densely")
			}),
		},
	}
}

// PlenaryQueryScenario tests the 'plenary query' command
func PlenaryQueryScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "plenary-query-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock session table", setupMockProtocols),
			harness.NewStep("Produce speech table", runPipeline),
			harness.NewStep("Run 'plenary query' with speaker filter", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "query", "-i", ctx.GetString("speeches"), "--speaker", "merkel")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary query should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Found 1 speeches", "Should show speech count"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Angela Merkel", "Should show the matching speaker"); err != nil {
					return err
				}
				return assert.NotContains(result.Stdout, "Max Mustermann", "Should hide other speakers")
			}),
			harness.NewStep("Run 'plenary query --full'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(plenaryBinary, "query", "-i", ctx.GetString("speeches"), "--party", "CDU/CSU", "--full")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary query --full should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Found 2 speeches", "Should show speech count"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "die Lage ist ernst und wir handeln entschlossen", "Should print full texts")
			}),
		},
	}
}

// PlenaryReportScenario tests the 'plenary report' command
func PlenaryReportScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "plenary-report-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock session table", setupMockProtocols),
			harness.NewStep("Produce speech table", runPipeline),
			harness.NewStep("Run 'plenary report'", func(ctx *harness.Context) error {
				plenaryBinary, err := FindProjectBinary()
				if err != nil {
					return err
				}

				outDir := filepath.Join(ctx.GetString("work_dir"), "evaluation")
				cmd := command.New(plenaryBinary, "report", "-i", ctx.GetString("speeches"), "-o", outDir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "plenary report should exit successfully"); err != nil {
					return err
				}

				data, err := os.ReadFile(filepath.Join(outDir, "evaluation_report.txt"))
				if err != nil {
					return fmt.Errorf("evaluation report not written: %w", err)
				}
				report := string(data)
				if err := assert.Contains(report, "=== Evaluation Report ===", "Should write the report title"); err != nil {
					return err
				}
				return assert.Contains(report, "CDU/CSU", "Should list distinct parties")
			}),
		},
	}
}
