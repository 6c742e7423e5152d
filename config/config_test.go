package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, DefaultMinWords, cfg.Segmentation.MinWords)
	assert.Equal(t, DefaultProfile, cfg.Normalization.Profile)

	custom := Config{Segmentation: SegmentationConfig{MinWords: -1}}.WithDefaults()
	assert.Equal(t, -1, custom.Segmentation.MinWords)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plenary.yml")
	content := `segmentation:
  min_words: 50
  workers: 4
normalization:
  profile: lenient
  max_words: 5000
  noise_substrings: ["Zuruf"]
  aggregate_by_speaker: true
  party_lookup:
    Neue Ministerin: SPD
output:
  db_path: data/plenary.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Segmentation.MinWords)
	assert.Equal(t, 4, cfg.Segmentation.Workers)
	assert.Equal(t, "lenient", cfg.Normalization.Profile)
	assert.Equal(t, 5000, cfg.Normalization.MaxWords)
	assert.Equal(t, []string{"Zuruf"}, cfg.Normalization.NoiseSubstrings)
	assert.True(t, cfg.Normalization.AggregateBySpeaker)
	assert.Equal(t, map[string]string{"Neue Ministerin": "SPD"}, cfg.Normalization.PartyLookup)
	assert.Equal(t, "data/plenary.db", cfg.Output.DBPath)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  db_path: x.db\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinWords, cfg.Segmentation.MinWords)
	assert.Equal(t, DefaultProfile, cfg.Normalization.Profile)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("segmentation: [unclosed"), 0644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadPartyLookupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.yml")
	require.NoError(t, os.WriteFile(path, []byte("Friedrich Merz: CDU/CSU\n\"Sahra Wagenknecht\": BSW\n"), 0644))

	parties, err := LoadPartyLookupFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Friedrich Merz":    "CDU/CSU",
		"Sahra Wagenknecht": "BSW",
	}, parties)
}
