package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/transcript"
)

type statRow struct {
	step  string
	count int
}

func printSteps(title string, rows []statRow, writer io.Writer) {
	fmt.Fprintln(writer, title)
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STEP\tROWS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\n", r.step, r.count)
	}
	w.Flush()
}

// PrintSegmentStats prints what each segmentation step did.
func PrintSegmentStats(s transcript.Stats, writer io.Writer) {
	printSteps("Segmentation", []statRow{
		{"sessions", s.Sessions},
		{"duplicate sessions skipped", s.DuplicateSessions},
		{"split pieces", s.Pieces},
		{"boundary markers", s.Markers},
		{"unattributed dropped", s.Unattributed},
		{"chair turns dropped", s.ChairTurns},
		{"merged into previous", s.Merged},
		{"too short dropped", s.Short},
		{"re-merged", s.Remerged},
		{"fragments", s.Fragments},
	}, writer)
	fmt.Fprintln(writer)
	PrintHitsTable(s.Hits, writer)
}

// PrintNormalizeStats prints what each normalization step did.
func PrintNormalizeStats(s speech.Stats, writer io.Writer) {
	printSteps("Normalization", []statRow{
		{"input fragments", s.Input},
		{"duplicate texts dropped", s.Duplicates},
		{"party not allowed dropped", s.PartyRejected},
		{"party backfilled", s.LookupResolved},
		{"party unresolved dropped", s.LookupMissing},
		{"position defaulted", s.RoleDefaulted},
		{"non-plenary dropped", s.NonPlenary},
		{"aggregated", s.Aggregated},
		{"too long dropped", s.TooLong},
		{"noise speakers dropped", s.Noise},
		{"speeches", s.Output},
	}, writer)
}
