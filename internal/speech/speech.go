// Package speech turns attributed transcript fragments into the final table of
// speeches: deduplicated, party-resolved, filtered and numbered.
package speech

// DefaultPosition is assigned to speeches whose marker named no office.
const DefaultPosition = "Abgeordnete(r)"

// AllowedParties are the party labels a speech may carry.
var AllowedParties = []string{
	"BSW",
	"AfD",
	"CDU/CSU",
	"FDP",
	"SPD",
	"DIE LINKE",
	"BÜNDNIS 90/DIE GRÜNEN",
}

// IsAllowedParty reports whether party is one of AllowedParties.
func IsAllowedParty(party string) bool {
	for _, p := range AllowedParties {
		if party == p {
			return true
		}
	}
	return false
}

// Speech is one fully attributed row of the final table.
type Speech struct {
	ID         int    `json:"u_id"`
	SessionID  string `json:"session_id"`
	DocumentID string `json:"document_id"`
	Date       string `json:"date"`
	IsDoctor   bool   `json:"is_doctor"`
	Speaker    string `json:"speaker"`
	Party      string `json:"party"`
	Position   string `json:"position"`
	Text       string `json:"speech"`
	WordCount  int    `json:"wordcount"`
}
