package speech

import (
	"strings"
	"testing"

	"github.com/grovetools/plenary/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragment(speaker, party, role, text string) transcript.Fragment {
	return transcript.Fragment{
		SessionID:  "5001",
		DocumentID: "20/101",
		Date:       "2023-05-10",
		Metadata:   transcript.Metadata{Speaker: speaker, Party: party, Role: role},
		Text:       text,
		WordCount:  transcript.WordCount(text),
	}
}

func TestNormalizeBackfillsPartyFromLookup(t *testing.T) {
	speeches, stats := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{
		fragment("Angela Merkel", "", "Bundeskanzlerin", "Meine Damen und Herren."),
		fragment("Unknown Person", "", "Bundesminister", "Etwas wird gesagt."),
	})

	require.Len(t, speeches, 1)
	assert.Equal(t, "Angela Merkel", speeches[0].Speaker)
	assert.Equal(t, "CDU/CSU", speeches[0].Party)
	assert.Equal(t, "Bundeskanzlerin", speeches[0].Position)
	assert.Equal(t, 1, stats.LookupResolved)
	assert.Equal(t, 1, stats.LookupMissing)
}

func TestNormalizeDropsNonPlenaryDocuments(t *testing.T) {
	f := fragment("Max Mustermann", "SPD", "", "Eine Rede.")
	f.DocumentID = "12345"

	speeches, stats := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{f})
	assert.Empty(t, speeches)
	assert.Equal(t, 1, stats.NonPlenary)
}

func TestIsNonPlenaryDocument(t *testing.T) {
	assert.True(t, IsNonPlenaryDocument("12345"))
	assert.True(t, IsNonPlenaryDocument(" 42 "))
	assert.True(t, IsNonPlenaryDocument("-7"))
	assert.False(t, IsNonPlenaryDocument("20/101"))
	assert.False(t, IsNonPlenaryDocument(""))
	assert.False(t, IsNonPlenaryDocument("12.5"))
	assert.True(t, IsNonPlenaryDocument("99999999999999999999"))
	assert.True(t, IsNonPlenaryDocument("1_000"))
	assert.True(t, IsNonPlenaryDocument("+3"))
	assert.False(t, IsNonPlenaryDocument("1__0"))
	assert.False(t, IsNonPlenaryDocument("_1"))
	assert.False(t, IsNonPlenaryDocument("1_"))
}

func TestNormalizeDefaultsPosition(t *testing.T) {
	speeches, stats := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", "Eine Rede."),
		fragment("Erika Beispiel", "FDP", "  ", "Noch eine Rede."),
	})

	require.Len(t, speeches, 2)
	for _, s := range speeches {
		assert.Equal(t, DefaultPosition, s.Position)
	}
	assert.Equal(t, 2, stats.RoleDefaulted)
}

func TestNormalizePartyAllowList(t *testing.T) {
	speeches, stats := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{
		fragment("Max Mustermann", "CDU/CSU", "", "Rede eins."),
		fragment("Erika Beispiel", "Bayern", "", "Rede zwei."),
		// A party outside the allow-list is not replaced from the lookup.
		fragment("Angela Merkel", "fraktionslos", "", "Rede drei."),
		fragment("Anna Muster", "AfD", "", "Rede vier."),
		// Surrounding whitespace is not stripped before the allow-list check.
		fragment("Hans Beispiel", "SPD ", "", "Rede fünf."),
	})

	require.Len(t, speeches, 2)
	assert.Equal(t, "Max Mustermann", speeches[0].Speaker)
	assert.Equal(t, "AfD", speeches[1].Party)
	assert.Equal(t, 3, stats.PartyRejected)
	for _, s := range speeches {
		assert.True(t, IsAllowedParty(s.Party))
	}
}

func TestNormalizeDedupesOnText(t *testing.T) {
	speeches, stats := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", "Gleicher Text."),
		fragment("Erika Beispiel", "FDP", "", "Gleicher Text."),
		fragment("Erika Beispiel", "FDP", "", "Anderer Text."),
	})

	require.Len(t, speeches, 2)
	assert.Equal(t, "Max Mustermann", speeches[0].Speaker)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestNormalizeAssignsDenseIDs(t *testing.T) {
	speeches, _ := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", "Rede eins."),
		fragment("Beifall Abgeordnete", "SPD", "", "Rede zwei."),
		fragment("Erika Beispiel", "Bayern", "", "Rede drei."),
		fragment("Anna Muster", "FDP", "", "Rede vier."),
	})

	require.Len(t, speeches, 2)
	for i, s := range speeches {
		assert.Equal(t, i+1, s.ID)
	}
}

func TestNormalizeWordCountMatchesText(t *testing.T) {
	f := fragment("Max Mustermann", "SPD", "", "Eins  zwei\ndrei vier.")
	f.WordCount = 99

	speeches, _ := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{f})
	require.Len(t, speeches, 1)
	assert.Equal(t, 4, speeches[0].WordCount)
	assert.Equal(t, transcript.WordCount(speeches[0].Text), speeches[0].WordCount)
}

func TestNormalizeNoiseSubstrings(t *testing.T) {
	frags := []transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", "Rede eins."),
		fragment("Weitere Abgeordnete", "SPD", "", "Rede zwei."),
		fragment("Frage Mustermann", "SPD", "", "Rede drei."),
	}

	strict, stats := NewNormalizer(StrictOptions()).Normalize(frags)
	assert.Len(t, strict, 1)
	assert.Equal(t, 2, stats.Noise)

	lenient, stats := NewNormalizer(LenientOptions()).Normalize(frags)
	assert.Len(t, lenient, 2)
	assert.Equal(t, 1, stats.Noise)
}

func TestNormalizeMaxWords(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("Wort ", DefaultMaxWords+1))
	exact := strings.TrimSpace(strings.Repeat("Text ", DefaultMaxWords))
	frags := []transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", long),
		fragment("Erika Beispiel", "SPD", "", exact),
	}

	strict, stats := NewNormalizer(StrictOptions()).Normalize(frags)
	require.Len(t, strict, 1)
	assert.Equal(t, "Erika Beispiel", strict[0].Speaker)
	assert.Equal(t, 1, stats.TooLong)

	lenient, _ := NewNormalizer(LenientOptions()).Normalize(frags)
	assert.Len(t, lenient, 2)
}

func TestNormalizeAggregateBySpeaker(t *testing.T) {
	frags := []transcript.Fragment{
		fragment("Max Mustermann", "SPD", "", "Teil eins."),
		fragment("Erika Beispiel", "FDP", "", "Zwischenrede."),
		fragment("Max Mustermann", "SPD", "", "Teil zwei."),
	}

	separate, _ := NewNormalizer(StrictOptions()).Normalize(frags)
	assert.Len(t, separate, 3)

	opts := StrictOptions()
	opts.AggregateBySpeaker = true
	joined, stats := NewNormalizer(opts).Normalize(frags)
	require.Len(t, joined, 2)
	assert.Equal(t, "Teil eins. Teil zwei.", joined[0].Text)
	assert.Equal(t, 4, joined[0].WordCount)
	assert.Equal(t, 1, stats.Aggregated)
	assert.Equal(t, 2, joined[1].ID)
}

func TestNormalizeCustomLookup(t *testing.T) {
	opts := StrictOptions()
	opts.Lookup = NewPartyLookup(map[string]string{"Unknown Person": "BSW"})

	speeches, _ := NewNormalizer(opts).Normalize([]transcript.Fragment{
		fragment("Unknown Person", "", "", "Rede."),
		fragment("Angela Merkel", "", "", "Noch eine Rede."),
	})
	require.Len(t, speeches, 1)
	assert.Equal(t, "BSW", speeches[0].Party)
}

func TestNormalizeEmptyInput(t *testing.T) {
	speeches, stats := NewNormalizer(StrictOptions()).Normalize(nil)
	assert.Empty(t, speeches)
	assert.Equal(t, 0, stats.Output)
}

func TestNormalizeKeepsDoctorFlag(t *testing.T) {
	f := fragment("Karl Lauterbach", "", "Bundesminister", "Eine Rede.")
	f.Doctor = true

	speeches, _ := NewNormalizer(StrictOptions()).Normalize([]transcript.Fragment{f})
	require.Len(t, speeches, 1)
	assert.True(t, speeches[0].IsDoctor)
	assert.Equal(t, "SPD", speeches[0].Party)
}

func TestProfileOptions(t *testing.T) {
	opts, err := ProfileOptions("")
	require.NoError(t, err)
	assert.Equal(t, StrictOptions(), opts)

	opts, err = ProfileOptions(ProfileLenient)
	require.NoError(t, err)
	assert.Equal(t, 0, opts.MaxWords)
	assert.Equal(t, []string{"Abgeordnet"}, opts.NoiseSubstrings)

	_, err = ProfileOptions("loose")
	assert.Error(t, err)
}
