package transcript

import "regexp"

// BoundaryPattern recognizes one lexical form of a speaker-turn marker.
type BoundaryPattern interface {
	// Name returns the pattern name used in statistics.
	Name() string

	// Find returns the leftmost marker in text, if any. Offsets in the
	// returned Match are relative to text.
	Find(text string) (Match, bool)
}

// Match is one recognized marker span and the metadata it carries.
type Match struct {
	Start int
	End   int
	Meta  Metadata
}

// ws matches one whitespace rune, including the no-break space found in
// protocol text. RE2's \s alone is ASCII-only.
const ws = `[\s\p{Zs}]`

// doctorToken marks a doctoral title anywhere inside a marker span.
var doctorToken = regexp.MustCompile(`Dr\.`)

// regexBoundary implements BoundaryPattern over a single regular expression.
// extract maps the submatch strings (index 0 is the whole span) to metadata.
type regexBoundary struct {
	name    string
	re      *regexp.Regexp
	extract func(groups []string) Metadata
}

func (b *regexBoundary) Name() string {
	return b.name
}

func (b *regexBoundary) Find(text string) (Match, bool) {
	loc := b.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}

	meta := b.extract(groups)
	meta.Doctor = doctorToken.MatchString(groups[0])
	return Match{Start: loc[0], End: loc[1], Meta: meta}, true
}

// DefaultPatterns returns the boundary family in priority order. When two
// patterns match at the same offset the earlier one in this list wins.
func DefaultPatterns() []BoundaryPattern {
	return []BoundaryPattern{
		NewMinisterialPattern(),
		NewChairPattern(),
		NewMemberPattern(),
	}
}
