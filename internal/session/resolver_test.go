package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "id,dokumentnummer,datum,text\n"

func writeTable(t *testing.T, path, rows string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(header+rows), 0644))
}

func TestResolveInputsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protokolle.csv")
	writeTable(t, path, "")

	paths, err := ResolveInputs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)
}

func TestResolveInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, filepath.Join(dir, "b.csv"), "")
	writeTable(t, filepath.Join(dir, "a.csv"), "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	paths, err := ResolveInputs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, paths)
}

func TestResolveInputsErrors(t *testing.T) {
	_, err := ResolveInputs("")
	assert.Error(t, err)

	_, err = ResolveInputs(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = ResolveInputs(t.TempDir())
	assert.Error(t, err)
}

func TestLoadAllConcatenatesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, filepath.Join(dir, "2.csv"), "2,20/2,2023-01-02,zwei\n")
	writeTable(t, filepath.Join(dir, "1.csv"), "1,20/1,2023-01-01,eins\n")

	records, err := LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].SessionID)
	assert.Equal(t, "2", records[1].SessionID)
}
