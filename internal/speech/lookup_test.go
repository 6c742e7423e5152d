package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPartyLookup(t *testing.T) {
	l := DefaultPartyLookup()
	assert.Equal(t, 28, l.Len())

	party, ok := l.Lookup("Angela Merkel")
	assert.True(t, ok)
	assert.Equal(t, "CDU/CSU", party)

	party, ok = l.Lookup("Robert Habeck")
	assert.True(t, ok)
	assert.Equal(t, "BÜNDNIS 90/DIE GRÜNEN", party)

	_, ok = l.Lookup("Unknown Person")
	assert.False(t, ok)

	for _, p := range defaultParties {
		assert.True(t, IsAllowedParty(p), p)
	}
}

func TestPartyLookupWith(t *testing.T) {
	base := DefaultPartyLookup()
	l := base.With(map[string]string{"Olaf Scholz": "FDP", "Neue Ministerin": "SPD"})

	party, _ := l.Lookup("Olaf Scholz")
	assert.Equal(t, "FDP", party)
	party, _ = l.Lookup("Neue Ministerin")
	assert.Equal(t, "SPD", party)

	party, _ = base.Lookup("Olaf Scholz")
	assert.Equal(t, "SPD", party, "base lookup must be unchanged")
	_, ok := base.Lookup("Neue Ministerin")
	assert.False(t, ok)
}

func TestNewPartyLookupCopies(t *testing.T) {
	src := map[string]string{"Max Mustermann": "SPD"}
	l := NewPartyLookup(src)
	src["Max Mustermann"] = "FDP"

	party, _ := l.Lookup("Max Mustermann")
	assert.Equal(t, "SPD", party)
}

func TestNilPartyLookup(t *testing.T) {
	var l *PartyLookup
	_, ok := l.Lookup("Angela Merkel")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}
