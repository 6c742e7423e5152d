package session

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingColumn is returned when the session table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// SchemaError names the column a session table is missing.
type SchemaError struct {
	Column string
	Path   string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %q", e.Path, ErrMissingColumn, e.Column)
	}
	return fmt.Sprintf("%s %q", ErrMissingColumn, e.Column)
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumn }

// columnAliases maps each record field to the header names accepted for it.
// The German names are the ones used by the DIP plenary protocol export.
var columnAliases = map[string][]string{
	"session_id":  {"id", "session_id"},
	"document_id": {"dokumentnummer", "document_id"},
	"date":        {"datum", "date"},
	"text":        {"text"},
}

var requiredColumns = []string{"session_id", "document_id", "date", "text"}

// Scanner reads session tables in CSV form.
type Scanner struct{}

// NewScanner creates a new session table scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanFile reads all records from the CSV file at path.
func (s *Scanner) ScanFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session table: %w", err)
	}
	defer f.Close()

	records, err := s.Scan(f)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Path = path
			return nil, schemaErr
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// Scan reads all records from r. The first row must be a header naming at
// least the id, document number, date and text columns; a missing column is
// a *SchemaError. Rows shorter than the header leave the trailing fields empty.
func (s *Scanner) Scan(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Column: "text"}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}
		records = append(records, Record{
			SessionID:  field(row, index["session_id"]),
			DocumentID: field(row, index["document_id"]),
			Date:       field(row, index["date"]),
			Text:       field(row, index["text"]),
		})
	}
	return records, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	index := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		found := false
		for _, alias := range columnAliases[col] {
			if i, ok := positions[alias]; ok {
				index[col] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &SchemaError{Column: columnAliases[col][0]}
		}
	}
	return index, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
