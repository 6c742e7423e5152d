package formatters

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/plenary/internal/speech"
)

// SpeechFormatter renders a speech for terminal output.
type SpeechFormatter func(s speech.Speech) string

// Preview collapses runs of whitespace and keeps at most maxWords words,
// marking the cut with an ellipsis. maxWords <= 0 keeps the full text.
func Preview(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + " …"
}

// Truncate shortens s to at most maxRunes runes, ending with an ellipsis when cut.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	if maxRunes == 1 {
		return "…"
	}
	return string(runes[:maxRunes-1]) + "…"
}

// SpeakerLabel returns "Dr. Name (Party, Position)" style attribution.
func SpeakerLabel(s speech.Speech) string {
	name := s.Speaker
	if s.IsDoctor {
		name = "Dr. " + name
	}
	return fmt.Sprintf("%s (%s, %s)", name, s.Party, s.Position)
}

// MakePreviewFormatter returns a formatter printing the attribution line,
// session reference and the first maxWords words of the speech.
func MakePreviewFormatter(maxWords int) SpeechFormatter {
	return func(s speech.Speech) string {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Yellow)
		mutedStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n",
			headerStyle.Render(fmt.Sprintf("#%d %s", s.ID, SpeakerLabel(s))),
			mutedStyle.Render(fmt.Sprintf("[%s %s, %d words]", s.DocumentID, s.Date, s.WordCount)))
		b.WriteString(Preview(s.Text, maxWords))
		b.WriteString("\n")
		return b.String()
	}
}

// FormatFullSpeech renders the attribution line followed by the full text.
func FormatFullSpeech(s speech.Speech) string {
	return MakePreviewFormatter(0)(s)
}
