package speech

// PartyLookup maps full speaker names to party labels. It backfills speeches
// whose marker carried no party, typically government members. A lookup is
// immutable once built and safe for concurrent reads.
type PartyLookup struct {
	parties map[string]string
}

// defaultParties is the built-in table of cabinet members 2019-2024.
var defaultParties = map[string]string{
	"Olaf Scholz":                "SPD",
	"Peter Altmaier":             "CDU/CSU",
	"Julia Klöckner":             "CDU/CSU",
	"Angela Merkel":              "CDU/CSU",
	"Heiko Maas":                 "SPD",
	"Annegret Kramp-Karrenbauer": "CDU/CSU",
	"Gerd Müller":                "CDU/CSU",
	"Christine Lambrecht":        "SPD",
	"Andreas Scheuer":            "CDU/CSU",
	"Franziska Giffey":           "SPD",
	"Anja Karliczek":             "CDU/CSU",
	"Hubertus Heil":              "SPD",
	"Jens Spahn":                 "CDU/CSU",
	"Helge Braun":                "CDU/CSU",
	"Karl Lauterbach":            "SPD",
	"Christian Lindner":          "FDP",
	"Bettina Stark-Watzinger":    "FDP",
	"Robert Habeck":              "BÜNDNIS 90/DIE GRÜNEN",
	"Nancy Faeser":               "SPD",
	"Marco Buschmann":            "FDP",
	"Annalena Baerbock":          "BÜNDNIS 90/DIE GRÜNEN",
	"Volker Wissing":             "FDP",
	"Cem Özdemir":                "BÜNDNIS 90/DIE GRÜNEN",
	"Svenja Schulze":             "SPD",
	"Lisa Paus":                  "BÜNDNIS 90/DIE GRÜNEN",
	"Wolfgang Schmidt":           "SPD",
	"Boris Pistorius":            "SPD",
	"Klara Geywitz":              "SPD",
}

// NewPartyLookup builds a lookup from a copy of parties.
func NewPartyLookup(parties map[string]string) *PartyLookup {
	m := make(map[string]string, len(parties))
	for name, party := range parties {
		m[name] = party
	}
	return &PartyLookup{parties: m}
}

// DefaultPartyLookup returns the built-in table.
func DefaultPartyLookup() *PartyLookup {
	return NewPartyLookup(defaultParties)
}

// With returns a new lookup with overrides layered over l.
func (l *PartyLookup) With(overrides map[string]string) *PartyLookup {
	merged := make(map[string]string, len(l.parties)+len(overrides))
	for name, party := range l.parties {
		merged[name] = party
	}
	for name, party := range overrides {
		merged[name] = party
	}
	return &PartyLookup{parties: merged}
}

// Lookup returns the party recorded for speaker.
func (l *PartyLookup) Lookup(speaker string) (string, bool) {
	if l == nil {
		return "", false
	}
	party, ok := l.parties[speaker]
	return party, ok
}

// Len returns the number of speakers in the table.
func (l *PartyLookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.parties)
}
