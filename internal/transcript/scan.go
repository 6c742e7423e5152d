package transcript

import "strings"

// boundaryScanner finds, from a moving cursor, the earliest marker among an
// ordered pattern family. Each pattern's next match is cached: none of the
// patterns look behind their start, so a match found from an earlier cursor
// stays the leftmost one for every later cursor that does not pass its start.
type boundaryScanner struct {
	patterns []BoundaryPattern
	text     string
	next     []cachedMatch
}

type cachedMatch struct {
	match     Match
	valid     bool
	exhausted bool
}

func newBoundaryScanner(patterns []BoundaryPattern, text string) *boundaryScanner {
	return &boundaryScanner{
		patterns: patterns,
		text:     text,
		next:     make([]cachedMatch, len(patterns)),
	}
}

// nextBoundary returns the earliest match starting at or after cursor and the
// index of the pattern that produced it. Ties go to the lower index.
func (s *boundaryScanner) nextBoundary(cursor int) (Match, int, bool) {
	best := -1
	var bestMatch Match

	for i, p := range s.patterns {
		c := &s.next[i]
		if c.exhausted {
			continue
		}
		if !c.valid || c.match.Start < cursor {
			m, ok := p.Find(s.text[cursor:])
			if !ok {
				c.exhausted = true
				c.valid = false
				continue
			}
			m.Start += cursor
			m.End += cursor
			c.match = m
			c.valid = true
		}
		if best == -1 || c.match.Start < bestMatch.Start {
			best = i
			bestMatch = c.match
		}
	}

	if best == -1 {
		return Match{}, -1, false
	}
	return bestMatch, best, true
}

// piece is one raw split unit. Markers carry metadata; content does not.
type piece struct {
	text string
	meta *Metadata
}

// split cuts text into content and marker pieces in order of appearance.
// hits is incremented per winning pattern name.
func split(patterns []BoundaryPattern, text string, hits map[string]int) []piece {
	var pieces []piece
	scanner := newBoundaryScanner(patterns, text)

	cursor := 0
	for cursor < len(text) {
		m, idx, ok := scanner.nextBoundary(cursor)
		if !ok {
			pieces = append(pieces, piece{text: strings.TrimSpace(text[cursor:])})
			break
		}

		if hits != nil {
			hits[patterns[idx].Name()]++
		}
		if cursor < m.Start {
			pieces = append(pieces, piece{text: strings.TrimSpace(text[cursor:m.Start])})
		}
		meta := m.Meta
		pieces = append(pieces, piece{text: strings.TrimSpace(text[m.Start:m.End]), meta: &meta})
		cursor = m.End
	}
	return pieces
}

// CountBoundaries returns how many markers each pattern wins in text.
func CountBoundaries(patterns []BoundaryPattern, text string) map[string]int {
	hits := make(map[string]int, len(patterns))
	for _, p := range patterns {
		hits[p.Name()] = 0
	}
	split(patterns, text, hits)
	return hits
}
