// Package transcript splits raw plenary protocol text into speaker-attributed fragments.
package transcript

import "strings"

// Metadata is the attribution a boundary marker carries.
type Metadata struct {
	Speaker string `json:"speaker,omitempty"`
	Party   string `json:"party,omitempty"`
	Role    string `json:"role,omitempty"`
	Doctor  bool   `json:"doctor,omitempty"`
}

// IsZero reports whether no attribution field is set.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Fragment is a contiguous piece of one session's text together with the
// attribution recovered for it.
type Fragment struct {
	SessionID  string `json:"sessionId"`
	DocumentID string `json:"documentId"`
	Date       string `json:"date"`
	Metadata
	Text      string `json:"text"`
	WordCount int    `json:"wordcount"`
}

// WordCount returns the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
