package formatters

import (
	"testing"

	"github.com/grovetools/plenary/internal/speech"
	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "eins zwei", Preview("eins   zwei", 5))
	assert.Equal(t, "eins zwei …", Preview("eins zwei drei", 2))
	assert.Equal(t, "eins zwei drei", Preview("eins\nzwei drei", 0))
	assert.Equal(t, "", Preview("", 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Abgeordnete(r)", Truncate("Abgeordnete(r)", 20))
	assert.Equal(t, "Bundesmi…", Truncate("Bundesministerin", 9))
	assert.Equal(t, "Grü…", Truncate("Grünen", 4))
	assert.Equal(t, "…", Truncate("Grünen", 1))
	assert.Equal(t, "Grünen", Truncate("Grünen", 0))
}

func TestSpeakerLabel(t *testing.T) {
	s := speech.Speech{Speaker: "Karl Lauterbach", Party: "SPD", Position: "Bundesminister", IsDoctor: true}
	assert.Equal(t, "Dr. Karl Lauterbach (SPD, Bundesminister)", SpeakerLabel(s))

	s.IsDoctor = false
	assert.Equal(t, "Karl Lauterbach (SPD, Bundesminister)", SpeakerLabel(s))
}

func TestFormatters(t *testing.T) {
	s := speech.Speech{ID: 3, DocumentID: "20/101", Date: "2023-05-10", Speaker: "Anna Muster",
		Party: "FDP", Position: speech.DefaultPosition, Text: "eins zwei drei vier", WordCount: 4}

	full := FormatFullSpeech(s)
	assert.Contains(t, full, "Anna Muster (FDP, Abgeordnete(r))")
	assert.Contains(t, full, "eins zwei drei vier\n")

	short := MakePreviewFormatter(2)(s)
	assert.Contains(t, short, "eins zwei …")
	assert.NotContains(t, short, "drei")
}
