// Package table reads and writes the CSV tables exchanged between pipeline
// stages: the fragment table produced by segmentation and the final speech table.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingColumn is returned when a table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// writeFileAtomic writes path through a temp file in the same directory and
// renames it into place, so readers never see a partial table.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// headerIndex maps column names to positions and checks that every required
// column is present.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// get returns the named column of row, or "" when absent.
func get(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
