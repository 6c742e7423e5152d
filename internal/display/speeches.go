package display

import (
	"fmt"
	"io"

	"github.com/grovetools/plenary/internal/formatters"
	"github.com/grovetools/plenary/internal/speech"
)

// PrintSpeeches renders each speech with the given formatter, separated by
// blank lines.
func PrintSpeeches(speeches []speech.Speech, format formatters.SpeechFormatter, writer io.Writer) {
	for i, s := range speeches {
		if i > 0 {
			fmt.Fprintln(writer)
		}
		fmt.Fprint(writer, format(s))
	}
}
