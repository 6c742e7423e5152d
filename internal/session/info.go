package session

// Record is one plenary protocol as delivered by the acquisition step.
// Text may be empty when the source row carried no text.
type Record struct {
	SessionID  string `json:"sessionId"`
	DocumentID string `json:"documentId"`
	Date       string `json:"date"`
	Text       string `json:"text,omitempty"`
}

// Summary holds structured information about a record for listing.
type Summary struct {
	SessionID  string         `json:"sessionId"`
	DocumentID string         `json:"documentId"`
	Date       string         `json:"date"`
	Chars      int            `json:"chars"`
	Boundaries int            `json:"boundaries"`
	Hits       map[string]int `json:"hits,omitempty"`
	SourcePath string         `json:"sourcePath,omitempty"`
}

// Dedupe drops records identical in all fields to an earlier record,
// keeping the first occurrence. It returns the survivors and the number dropped.
func Dedupe(records []Record) ([]Record, int) {
	seen := make(map[Record]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}
