package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/transcript"
)

// SpeechColumns is the header of the final speech table, in output order.
var SpeechColumns = []string{
	"u_id", "session_id", "document_id", "date", "is_doctor", "speaker", "party", "position", "speech",
}

// WriteSpeeches writes speeches with a header row. is_doctor is written as 0/1.
func WriteSpeeches(w io.Writer, speeches []speech.Speech) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SpeechColumns); err != nil {
		return err
	}
	for _, s := range speeches {
		doctor := "0"
		if s.IsDoctor {
			doctor = "1"
		}
		record := []string{
			strconv.Itoa(s.ID), s.SessionID, s.DocumentID, s.Date, doctor,
			s.Speaker, s.Party, s.Position, s.Text,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpeechesFile fully replaces the file at path with the speech table.
func WriteSpeechesFile(path string, speeches []speech.Speech) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteSpeeches(w, speeches)
	})
}

// ReadSpeeches reads a speech table. Only the speech column is required;
// word counts are computed from it.
func ReadSpeeches(r io.Reader) ([]speech.Speech, error) {
	reader := newReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, "speech")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index, err := headerIndex(header, "speech")
	if err != nil {
		return nil, err
	}

	var speeches []speech.Speech
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return speeches, fmt.Errorf("reading row %d: %w", len(speeches)+2, err)
		}
		var id int
		if v := strings.TrimSpace(get(row, index, "u_id")); v != "" {
			if id, err = strconv.Atoi(v); err != nil {
				return speeches, fmt.Errorf("reading row %d: invalid u_id %q: %w", len(speeches)+2, v, err)
			}
		}
		text := get(row, index, "speech")
		speeches = append(speeches, speech.Speech{
			ID:         id,
			SessionID:  get(row, index, "session_id"),
			DocumentID: get(row, index, "document_id"),
			Date:       get(row, index, "date"),
			IsDoctor:   get(row, index, "is_doctor") == "1",
			Speaker:    get(row, index, "speaker"),
			Party:      get(row, index, "party"),
			Position:   get(row, index, "position"),
			Text:       text,
			WordCount:  transcript.WordCount(text),
		})
	}
	return speeches, nil
}

// ReadSpeechesFile reads the speech table at path.
func ReadSpeechesFile(path string) ([]speech.Speech, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open speech table: %w", err)
	}
	defer f.Close()

	speeches, err := ReadSpeeches(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return speeches, nil
}
