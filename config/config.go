package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator

// Defaults applied to zero-valued settings.
const (
	DefaultMinWords = 200
	DefaultProfile  = "strict"
)

// SegmentationConfig defines settings for splitting protocols into fragments.
type SegmentationConfig struct {
	// MinWords drops fragments with at most this many words.
	// 0 (default): 200 words. Negative: keep every fragment.
	MinWords int `yaml:"min_words,omitempty"`

	// Workers controls how many sessions are segmented in parallel.
	// 0 or 1 (default): sequential.
	Workers int `yaml:"workers,omitempty"`
}

// NormalizationConfig defines settings for turning fragments into speeches.
type NormalizationConfig struct {
	// Profile selects the filter rule set.
	// "strict" (default): drop speeches over 3500 words and all procedural speaker names.
	// "lenient": no upper bound, drop only mis-attributed member annotations.
	Profile string `yaml:"profile,omitempty"`

	// MaxWords overrides the profile's upper word bound when > 0.
	MaxWords int `yaml:"max_words,omitempty"`

	// NoiseSubstrings are appended to the profile's procedural speaker substrings.
	NoiseSubstrings []string `yaml:"noise_substrings,omitempty"`

	// AggregateBySpeaker joins all turns of a speaker within one session.
	AggregateBySpeaker bool `yaml:"aggregate_by_speaker,omitempty"`

	// PartyLookup adds or overrides speaker-to-party entries of the built-in table.
	PartyLookup map[string]string `yaml:"party_lookup,omitempty"`

	// LookupFile is a YAML file with further speaker-to-party entries.
	LookupFile string `yaml:"lookup_file,omitempty"`
}

// OutputConfig defines where results are written besides the CSV table.
type OutputConfig struct {
	// DBPath, when set, also stores the speech table in this SQLite database.
	DBPath string `yaml:"db_path,omitempty"`
}

// Config is the top-level configuration structure for plenary.
type Config struct {
	Segmentation  SegmentationConfig  `yaml:"segmentation,omitempty"`
	Normalization NormalizationConfig `yaml:"normalization,omitempty"`
	Output        OutputConfig        `yaml:"output,omitempty"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Segmentation.MinWords == 0 {
		c.Segmentation.MinWords = DefaultMinWords
	}
	if c.Normalization.Profile == "" {
		c.Normalization.Profile = DefaultProfile
	}
	return c
}

// LoadFile reads a standalone YAML configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

// LoadPartyLookupFile reads a YAML mapping of speaker name to party.
func LoadPartyLookupFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read party lookup: %w", err)
	}

	var parties map[string]string
	if err := yaml.Unmarshal(data, &parties); err != nil {
		return nil, fmt.Errorf("failed to parse party lookup %s: %w", path, err)
	}
	return parties, nil
}
