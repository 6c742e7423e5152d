package transcript

import "regexp"

// memberRe matches "<Name> (<Party-or-constituency>):".
var memberRe = regexp.MustCompile(
	ws + `*(?:Dr\.` + ws + `+)?` +
		`([A-Za-zÄÖÜäöüß\-]+` + ws + `+[A-Za-zÄÖÜäöüß\-]+(?:` + ws + `+[A-Za-zÄÖÜäöüß\-]+)*)` +
		ws + `+\(([A-ZÄÖÜß0-9/\s\p{Zs}\-]+|AfD)\):`)

// NewMemberPattern recognizes turns of members of parliament. The bracketed
// token is captured as party even when it is a constituency label; telling
// the two apart is left to the speech normalizer's allow-list.
func NewMemberPattern() BoundaryPattern {
	return &regexBoundary{
		name: "member",
		re:   memberRe,
		extract: func(groups []string) Metadata {
			return Metadata{Speaker: groups[1], Party: groups[2]}
		},
	}
}
