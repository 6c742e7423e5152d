package display

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/grovetools/plenary/internal/formatters"
	"github.com/grovetools/plenary/internal/session"
	"github.com/grovetools/plenary/internal/speech"
)

// PrintSessionsTable prints session summaries in a formatted table.
func PrintSessionsTable(sessions []session.Summary, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SESSION ID\tDOCUMENT\tDATE\tCHARS\tBOUNDARIES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			s.SessionID, s.DocumentID, s.Date, s.Chars, s.Boundaries)
	}
	w.Flush()
}

// PrintSpeechesTable prints one line per speech with a short text preview.
func PrintSpeechesTable(speeches []speech.Speech, previewWords int, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSPEAKER\tPARTY\tPOSITION\tWORDS\tPREVIEW")
	for _, s := range speeches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Date, s.Speaker, s.Party, formatters.Truncate(s.Position, 32), s.WordCount,
			formatters.Preview(s.Text, previewWords))
	}
	w.Flush()
}

// PrintHitsTable prints boundary matches per pattern, sorted by name.
func PrintHitsTable(hits map[string]int, writer io.Writer) {
	names := make([]string, 0, len(hits))
	for name := range hits {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tMATCHES")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, hits[name])
	}
	w.Flush()
}
