package cmd

import (
	"fmt"

	core_config "github.com/grovetools/core/config"
	plenary_config "github.com/grovetools/plenary/config"
	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/transcript"
	"github.com/spf13/cobra"
)

// pipelineFlags holds the command-line overrides shared by the pipeline commands.
type pipelineFlags struct {
	configFile string
	minWords   int
	workers    int
	profile    string
	maxWords   int
	lookupFile string
	aggregate  bool
	dbPath     string
}

func addConfigFlag(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.configFile, "config-file", "", "Load settings from this YAML file instead of grove.yml")
}

func addSegmentFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().IntVar(&f.minWords, "min-words", 0, "Drop fragments with at most this many words (default 200, negative keeps all)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Segment this many sessions in parallel")
}

func addNormalizeFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Filter rule set: 'strict' or 'lenient'. Overrides config.")
	cmd.Flags().IntVar(&f.maxWords, "max-words", 0, "Drop speeches longer than this many words. Overrides the profile.")
	cmd.Flags().StringVar(&f.lookupFile, "lookup", "", "YAML file mapping speaker names to parties")
	cmd.Flags().BoolVar(&f.aggregate, "aggregate", false, "Join all turns of a speaker within one session")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "Also store speeches in this SQLite database")
}

// loadConfig reads the standalone config file when given, otherwise the
// plenary extension of the grove configuration. Missing configuration is not
// an error; defaults apply.
func loadConfig(cmd *cobra.Command, f *pipelineFlags) (plenary_config.Config, error) {
	var cfg plenary_config.Config
	if f.configFile != "" {
		loaded, err := plenary_config.LoadFile(f.configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	} else {
		coreCfg, err := core_config.LoadDefault()
		if err == nil {
			var ext plenary_config.Config
			if err := coreCfg.UnmarshalExtension("plenary", &ext); err == nil {
				cfg = ext
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("min-words") {
		cfg.Segmentation.MinWords = f.minWords
	}
	if flags.Changed("workers") {
		cfg.Segmentation.Workers = f.workers
	}
	if flags.Changed("profile") {
		cfg.Normalization.Profile = f.profile
	}
	if flags.Changed("max-words") {
		cfg.Normalization.MaxWords = f.maxWords
	}
	if flags.Changed("lookup") {
		cfg.Normalization.LookupFile = f.lookupFile
	}
	if flags.Changed("aggregate") {
		cfg.Normalization.AggregateBySpeaker = f.aggregate
	}
	if flags.Changed("db") {
		cfg.Output.DBPath = f.dbPath
	}

	return cfg.WithDefaults(), nil
}

func segmentOptions(cfg plenary_config.Config) transcript.Options {
	opts := transcript.DefaultOptions()
	opts.MinWords = cfg.Segmentation.MinWords
	opts.Workers = cfg.Segmentation.Workers
	return opts
}

func normalizeOptions(cfg plenary_config.Config) (speech.Options, error) {
	n := cfg.Normalization
	opts, err := speech.ProfileOptions(n.Profile)
	if err != nil {
		return opts, err
	}
	if n.MaxWords > 0 {
		opts.MaxWords = n.MaxWords
	}
	opts.NoiseSubstrings = append(opts.NoiseSubstrings, n.NoiseSubstrings...)
	opts.AggregateBySpeaker = n.AggregateBySpeaker

	lookup := speech.DefaultPartyLookup().With(n.PartyLookup)
	if n.LookupFile != "" {
		parties, err := plenary_config.LoadPartyLookupFile(n.LookupFile)
		if err != nil {
			return opts, fmt.Errorf("failed to load party lookup: %w", err)
		}
		lookup = lookup.With(parties)
	}
	opts.Lookup = lookup
	return opts, nil
}
