package transcript

import "regexp"

// chairRe matches "Präsident[in]|Vizepräsident[in] <Name>:".
var chairRe = regexp.MustCompile(
	ws + `*(Präsident|Präsidentin|Vizepräsident|Vizepräsidentin)` + ws + `+(?:Dr\.` + ws + `+)?` +
		`([A-Za-zÄÖÜäöüß\-]+(?:` + ws + `+[A-Za-zÄÖÜäöüß\-]+)*):`)

// ChairRoles are the presiding-officer labels. Turns carrying one of them are
// procedural and never become speeches.
var ChairRoles = []string{"Präsident", "Präsidentin", "Vizepräsident", "Vizepräsidentin"}

// NewChairPattern recognizes turns of the presiding officer. The role is
// captured before the name.
func NewChairPattern() BoundaryPattern {
	return &regexBoundary{
		name: "chair",
		re:   chairRe,
		extract: func(groups []string) Metadata {
			return Metadata{Role: groups[1], Speaker: groups[2]}
		},
	}
}

// IsChairRole reports whether role is a presiding-officer label.
func IsChairRole(role string) bool {
	for _, r := range ChairRoles {
		if role == r {
			return true
		}
	}
	return false
}
