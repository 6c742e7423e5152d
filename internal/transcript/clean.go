package transcript

import "regexp"

// parenthetical matches from a "(" to the next ")". Nesting is not tracked.
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// StripParentheticals removes every "(...)" span from text, such as applause
// and interjection notes. Applying it twice yields the same result as once.
func StripParentheticals(text string) string {
	return parenthetical.ReplaceAllString(text, "")
}

// FilterShort keeps fragments with more than minWords words. The word count
// of every fragment is refreshed before the comparison.
func FilterShort(frags []Fragment, minWords int) []Fragment {
	kept := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		f.WordCount = WordCount(f.Text)
		if f.WordCount > minWords {
			kept = append(kept, f)
		}
	}
	return kept
}
