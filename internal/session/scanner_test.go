package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanGermanHeader(t *testing.T) {
	input := "id,dokumentnummer,datum,text,titel\n" +
		`5001,20/101,2023-05-10,"Max Mustermann (SPD): Text, mit Komma.",Sitzung` + "\n"

	records, err := NewScanner().Scan(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		SessionID:  "5001",
		DocumentID: "20/101",
		Date:       "2023-05-10",
		Text:       "Max Mustermann (SPD): Text, mit Komma.",
	}, records[0])
}

func TestScanEnglishHeaderAndBOM(t *testing.T) {
	input := "\ufeffsession_id,document_id,date,text\n1,20/1,2023-01-01,Hallo\n"

	records, err := NewScanner().Scan(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].SessionID)
}

func TestScanMissingColumn(t *testing.T) {
	_, err := NewScanner().Scan(strings.NewReader("id,dokumentnummer,datum\n1,20/1,2023-01-01\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "text", schemaErr.Column)
}

func TestScanEmptyInput(t *testing.T) {
	_, err := NewScanner().Scan(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestScanShortRowsAndEmptyText(t *testing.T) {
	input := "id,dokumentnummer,datum,text\n1,20/1,2023-01-01,\n2,20/2\n"

	records, err := NewScanner().Scan(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Text)
	assert.Empty(t, records[1].Date)
	assert.Empty(t, records[1].Text)
}

func TestScanFileSetsPathOnSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,text\n1,x\n"), 0644))

	_, err := NewScanner().ScanFile(path)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, path, schemaErr.Path)
	assert.Equal(t, "dokumentnummer", schemaErr.Column)
	assert.Contains(t, err.Error(), path)
}

func TestDedupe(t *testing.T) {
	a := Record{SessionID: "1", DocumentID: "20/1", Date: "2023-01-01", Text: "x"}
	b := Record{SessionID: "1", DocumentID: "20/1", Date: "2023-01-01", Text: "y"}

	out, dropped := Dedupe([]Record{a, b, a, a})
	assert.Equal(t, []Record{a, b}, out)
	assert.Equal(t, 2, dropped)
}
