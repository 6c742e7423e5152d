package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grovetools/plenary/internal/transcript"
)

// FragmentColumns is the header of the fragment table.
var FragmentColumns = []string{
	"session_id", "document_id", "date", "speaker", "party", "doctor", "role", "text", "wordcount",
}

// doctorMark is how a set doctoral flag is written to the fragment table.
const doctorMark = "Dr."

// WriteFragments writes frags with a header row.
func WriteFragments(w io.Writer, frags []transcript.Fragment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FragmentColumns); err != nil {
		return err
	}
	for _, f := range frags {
		doctor := ""
		if f.Doctor {
			doctor = doctorMark
		}
		record := []string{
			f.SessionID, f.DocumentID, f.Date,
			f.Speaker, f.Party, doctor, f.Role,
			f.Text, strconv.Itoa(transcript.WordCount(f.Text)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFragmentsFile replaces the file at path with the fragment table.
func WriteFragmentsFile(path string, frags []transcript.Fragment) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteFragments(w, frags)
	})
}

// ReadFragments reads a fragment table. The doctor and wordcount columns are
// optional; word counts are always recomputed from the text.
func ReadFragments(r io.Reader) ([]transcript.Fragment, error) {
	reader := newReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, "text")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index, err := headerIndex(header, "session_id", "document_id", "date", "speaker", "party", "role", "text")
	if err != nil {
		return nil, err
	}

	var frags []transcript.Fragment
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frags, fmt.Errorf("reading row %d: %w", len(frags)+2, err)
		}
		text := get(row, index, "text")
		frags = append(frags, transcript.Fragment{
			SessionID:  get(row, index, "session_id"),
			DocumentID: get(row, index, "document_id"),
			Date:       get(row, index, "date"),
			Metadata: transcript.Metadata{
				Speaker: get(row, index, "speaker"),
				Party:   get(row, index, "party"),
				Role:    get(row, index, "role"),
				Doctor:  parseDoctor(get(row, index, "doctor")),
			},
			Text:      text,
			WordCount: transcript.WordCount(text),
		})
	}
	return frags, nil
}

// ReadFragmentsFile reads the fragment table at path.
func ReadFragmentsFile(path string) ([]transcript.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fragment table: %w", err)
	}
	defer f.Close()

	frags, err := ReadFragments(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return frags, nil
}

func parseDoctor(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "dr.", "1", "true":
		return true
	}
	return false
}
