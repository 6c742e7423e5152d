package transcript

import "regexp"

// ministerialRe matches "<Name>, Bundesminister[in]|Bundeskanzler[in] [qualifier]:".
var ministerialRe = regexp.MustCompile(
	ws + `*(?:Dr\.` + ws + `+)?` +
		`([A-ZÄÖÜ][a-zäöüß]+(?:-[A-ZÄÖÜ][a-zäöüß]+)*(?:` + ws + `+[A-ZÄÖÜ][a-zäöüß]+(?:-[A-ZÄÖÜ][a-zäöüß]+)*)*)` +
		ws + `*,` + ws + `*(Bundesminister|Bundesministerin|Bundeskanzler|Bundeskanzlerin)` +
		`(?:` + ws + `+[a-zäöüßA-ZÄÖÜ\s\p{Zs}]+)?:`)

// NewMinisterialPattern recognizes turns of government members. It captures
// the speaker name and the office; party is not part of this marker.
func NewMinisterialPattern() BoundaryPattern {
	return &regexBoundary{
		name: "ministerial",
		re:   ministerialRe,
		extract: func(groups []string) Metadata {
			return Metadata{Speaker: groups[1], Role: groups[2]}
		},
	}
}
