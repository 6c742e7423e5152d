package speech

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grovetools/plenary/internal/transcript"
	"github.com/sirupsen/logrus"
)

// Profile names select a filter rule set.
const (
	ProfileStrict  = "strict"
	ProfileLenient = "lenient"
)

// DefaultMaxWords is the strict profile's upper word bound. Longer rows are
// transcription artifacts, usually several speeches run together.
const DefaultMaxWords = 3500

// Options configures a Normalizer.
type Options struct {
	// MaxWords drops speeches longer than MaxWords words. 0 disables the bound.
	MaxWords int
	// NoiseSubstrings drops rows whose speaker contains any of them.
	NoiseSubstrings []string
	// AggregateBySpeaker joins all rows of one speaker within a session
	// before the length filters, instead of keeping each turn separate.
	AggregateBySpeaker bool
	// Lookup backfills missing parties. Nil means DefaultPartyLookup.
	Lookup *PartyLookup
}

// StrictOptions is the default rule set: an upper length bound and the full
// set of procedural speaker substrings.
func StrictOptions() Options {
	return Options{
		MaxWords:        DefaultMaxWords,
		NoiseSubstrings: []string{"Abgeordnet", "Frage", "Zustimmung", "Beifall"},
	}
}

// LenientOptions applies no upper bound and filters only mis-attributed
// member annotations.
func LenientOptions() Options {
	return Options{
		NoiseSubstrings: []string{"Abgeordnet"},
	}
}

// ProfileOptions returns the options for a named profile. An empty name
// selects the strict profile.
func ProfileOptions(name string) (Options, error) {
	switch name {
	case "", ProfileStrict:
		return StrictOptions(), nil
	case ProfileLenient:
		return LenientOptions(), nil
	default:
		return Options{}, fmt.Errorf("unknown normalization profile %q (expected %q or %q)", name, ProfileStrict, ProfileLenient)
	}
}

// Stats counts the rows each normalization step removed or changed.
type Stats struct {
	Input          int `json:"input"`
	Duplicates     int `json:"duplicates"`
	PartyRejected  int `json:"partyRejected"`
	LookupResolved int `json:"lookupResolved"`
	LookupMissing  int `json:"lookupMissing"`
	RoleDefaulted  int `json:"roleDefaulted"`
	NonPlenary     int `json:"nonPlenary"`
	Aggregated     int `json:"aggregated"`
	TooLong        int `json:"tooLong"`
	Noise          int `json:"noise"`
	Output         int `json:"output"`
}

// Normalizer applies the full-table steps that turn fragments into speeches.
// Steps run strictly in sequence because each one sees the rows left by the
// previous one.
type Normalizer struct {
	opts Options
	log  *logrus.Entry
}

// NewNormalizer creates a normalizer with the given options.
func NewNormalizer(opts Options) *Normalizer {
	if opts.Lookup == nil {
		opts.Lookup = DefaultPartyLookup()
	}
	return &Normalizer{
		opts: opts,
		log:  logrus.WithField("component", "speech.normalizer"),
	}
}

// Normalize converts frags into the final speech table. IDs are dense and
// 1-based in output order.
func (n *Normalizer) Normalize(frags []transcript.Fragment) ([]Speech, Stats) {
	stats := Stats{Input: len(frags)}

	rows := make([]Speech, 0, len(frags))
	for _, f := range frags {
		rows = append(rows, Speech{
			SessionID:  f.SessionID,
			DocumentID: f.DocumentID,
			Date:       f.Date,
			IsDoctor:   f.Doctor,
			Speaker:    f.Speaker,
			Party:      f.Party,
			Position:   strings.TrimSpace(f.Role),
			Text:       f.Text,
		})
	}

	rows = n.dedupe(rows, &stats)
	rows = n.resolveParties(rows, &stats)
	rows = n.defaultPositions(rows, &stats)
	rows = n.dropNonPlenary(rows, &stats)
	if n.opts.AggregateBySpeaker {
		rows = n.aggregate(rows, &stats)
	}
	rows = n.countWords(rows)
	rows = n.dropTooLong(rows, &stats)
	rows = n.dropNoise(rows, &stats)
	rows = assignIDs(rows)
	stats.Output = len(rows)

	n.log.WithFields(logrus.Fields{
		"input":           stats.Input,
		"duplicates":      stats.Duplicates,
		"party_rejected":  stats.PartyRejected,
		"lookup_resolved": stats.LookupResolved,
		"lookup_missing":  stats.LookupMissing,
		"non_plenary":     stats.NonPlenary,
		"too_long":        stats.TooLong,
		"noise":           stats.Noise,
		"output":          stats.Output,
	}).Info("normalized speeches")

	return rows, stats
}

// dedupe keeps the first row of every distinct text.
func (n *Normalizer) dedupe(rows []Speech, stats *Stats) []Speech {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Text]; ok {
			stats.Duplicates++
			continue
		}
		seen[r.Text] = struct{}{}
		out = append(out, r)
	}
	n.log.WithField("rows", len(out)).Debug("dedupe")
	return out
}

// resolveParties keeps rows with an allow-listed party and backfills rows
// without one from the lookup. A populated party outside the allow-list is
// dropped without a lookup.
func (n *Normalizer) resolveParties(rows []Speech, stats *Stats) []Speech {
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		switch {
		case r.Party == "":
			party, ok := n.opts.Lookup.Lookup(r.Speaker)
			if !ok {
				stats.LookupMissing++
				continue
			}
			r.Party = party
			stats.LookupResolved++
		case !IsAllowedParty(r.Party):
			stats.PartyRejected++
			continue
		}
		out = append(out, r)
	}
	n.log.WithField("rows", len(out)).Debug("party resolution")
	return out
}

func (n *Normalizer) defaultPositions(rows []Speech, stats *Stats) []Speech {
	for i := range rows {
		if rows[i].Position == "" {
			rows[i].Position = DefaultPosition
			stats.RoleDefaulted++
		}
	}
	return rows
}

// dropNonPlenary removes rows whose document id is a bare integer. Those ids
// number another chamber's protocols.
func (n *Normalizer) dropNonPlenary(rows []Speech, stats *Stats) []Speech {
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		if IsNonPlenaryDocument(r.DocumentID) {
			stats.NonPlenary++
			continue
		}
		out = append(out, r)
	}
	n.log.WithField("rows", len(out)).Debug("non-plenary filter")
	return out
}

// integerID matches a signed integer literal of any size, with optional
// single underscores between digits.
var integerID = regexp.MustCompile(`^[+-]?[0-9](?:_?[0-9])*$`)

// IsNonPlenaryDocument reports whether id is a pure integer.
func IsNonPlenaryDocument(id string) bool {
	return integerID.MatchString(strings.TrimSpace(id))
}

type aggregateKey struct {
	sessionID, documentID, date, speaker string
}

// aggregate joins all rows sharing session, document, date and speaker into
// the first of them, in order of first appearance.
func (n *Normalizer) aggregate(rows []Speech, stats *Stats) []Speech {
	index := make(map[aggregateKey]int, len(rows))
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		key := aggregateKey{r.SessionID, r.DocumentID, r.Date, r.Speaker}
		if i, ok := index[key]; ok {
			out[i].Text = out[i].Text + " " + r.Text
			stats.Aggregated++
			continue
		}
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}

func (n *Normalizer) countWords(rows []Speech) []Speech {
	for i := range rows {
		rows[i].WordCount = transcript.WordCount(rows[i].Text)
	}
	return rows
}

func (n *Normalizer) dropTooLong(rows []Speech, stats *Stats) []Speech {
	if n.opts.MaxWords <= 0 {
		return rows
	}
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		if r.WordCount > n.opts.MaxWords {
			stats.TooLong++
			continue
		}
		out = append(out, r)
	}
	return out
}

// dropNoise removes rows whose speaker is a procedural annotation rather
// than a person.
func (n *Normalizer) dropNoise(rows []Speech, stats *Stats) []Speech {
	if len(n.opts.NoiseSubstrings) == 0 {
		return rows
	}
	out := make([]Speech, 0, len(rows))
	for _, r := range rows {
		if containsAny(r.Speaker, n.opts.NoiseSubstrings) {
			stats.Noise++
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func assignIDs(rows []Speech) []Speech {
	for i := range rows {
		rows[i].ID = i + 1
	}
	return rows
}
