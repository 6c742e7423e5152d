package transcript

import (
	"context"

	"github.com/grovetools/plenary/internal/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMinWords is the word count at or below which a fragment is too short
// to be a speech.
const DefaultMinWords = 200

// Options configures a Segmenter.
type Options struct {
	// Patterns is the boundary family in priority order. Nil means DefaultPatterns.
	Patterns []BoundaryPattern
	// MinWords drops fragments whose word count is <= MinWords.
	MinWords int
	// Workers > 1 segments sessions in parallel. Output order is unaffected.
	Workers int
}

// DefaultOptions returns the standard boundary family and length threshold.
func DefaultOptions() Options {
	return Options{
		Patterns: DefaultPatterns(),
		MinWords: DefaultMinWords,
	}
}

// Stats counts what each segmentation step did.
type Stats struct {
	Sessions          int            `json:"sessions"`
	DuplicateSessions int            `json:"duplicateSessions"`
	Pieces            int            `json:"pieces"`
	Markers           int            `json:"markers"`
	Unattributed      int            `json:"unattributed"`
	ChairTurns        int            `json:"chairTurns"`
	Merged            int            `json:"merged"`
	Short             int            `json:"short"`
	Remerged          int            `json:"remerged"`
	Fragments         int            `json:"fragments"`
	Hits              map[string]int `json:"hits"`
}

func (s *Stats) add(o Stats) {
	s.Sessions += o.Sessions
	s.DuplicateSessions += o.DuplicateSessions
	s.Pieces += o.Pieces
	s.Markers += o.Markers
	s.Unattributed += o.Unattributed
	s.ChairTurns += o.ChairTurns
	s.Merged += o.Merged
	s.Short += o.Short
	s.Remerged += o.Remerged
	s.Fragments += o.Fragments
	if s.Hits == nil {
		s.Hits = make(map[string]int)
	}
	for k, v := range o.Hits {
		s.Hits[k] += v
	}
}

// Segmenter turns session records into attributed speech fragments.
type Segmenter struct {
	opts Options
	log  *logrus.Entry
}

// NewSegmenter creates a segmenter with the given options.
func NewSegmenter(opts Options) *Segmenter {
	if opts.Patterns == nil {
		opts.Patterns = DefaultPatterns()
	}
	return &Segmenter{
		opts: opts,
		log:  logrus.WithField("component", "transcript.segmenter"),
	}
}

// Attribute splits one record at its boundary markers and moves each marker's
// metadata onto the fragment right after it. Markers themselves, fragments
// without a speaker and chair turns are dropped.
func (s *Segmenter) Attribute(rec session.Record) ([]Fragment, Stats) {
	stats := Stats{Sessions: 1, Hits: make(map[string]int)}
	pieces := split(s.opts.Patterns, rec.Text, stats.Hits)
	stats.Pieces = len(pieces)

	var frags []Fragment
	var pending *Metadata
	for _, p := range pieces {
		if p.meta != nil {
			stats.Markers++
			pending = p.meta
			continue
		}

		var meta Metadata
		if pending != nil {
			meta = *pending
			pending = nil
		}

		switch {
		case IsChairRole(meta.Role):
			stats.ChairTurns++
		case meta.Speaker == "":
			stats.Unattributed++
		default:
			frags = append(frags, Fragment{
				SessionID:  rec.SessionID,
				DocumentID: rec.DocumentID,
				Date:       rec.Date,
				Metadata:   meta,
				Text:       p.text,
				WordCount:  WordCount(p.text),
			})
		}
	}
	return frags, stats
}

// SegmentRecord runs the full pipeline for one record: attribution, merge of
// same-speaker runs, removal of parenthetical notes, the length filter and a
// second merge over the survivors.
func (s *Segmenter) SegmentRecord(rec session.Record) ([]Fragment, Stats) {
	frags, stats := s.Attribute(rec)

	before := len(frags)
	frags = MergeSpeakerRuns(frags)
	stats.Merged = before - len(frags)

	for i := range frags {
		frags[i].Text = StripParentheticals(frags[i].Text)
	}

	before = len(frags)
	frags = FilterShort(frags, s.opts.MinWords)
	stats.Short = before - len(frags)

	before = len(frags)
	frags = MergeSpeakerRuns(frags)
	stats.Remerged = before - len(frags)

	stats.Fragments = len(frags)
	return frags, stats
}

// SegmentAll segments every record and concatenates the fragments in input
// order. Identical records are segmented once.
func (s *Segmenter) SegmentAll(ctx context.Context, records []session.Record) ([]Fragment, Stats, error) {
	records, dupes := session.Dedupe(records)

	results := make([][]Fragment, len(records))
	perRecord := make([]Stats, len(records))

	if s.opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Workers)
		for i := range records {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i], perRecord[i] = s.SegmentRecord(records[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, Stats{}, err
		}
	} else {
		for i := range records {
			if err := ctx.Err(); err != nil {
				return nil, Stats{}, err
			}
			results[i], perRecord[i] = s.SegmentRecord(records[i])
		}
	}

	total := Stats{DuplicateSessions: dupes, Hits: make(map[string]int)}
	for _, p := range s.opts.Patterns {
		total.Hits[p.Name()] = 0
	}
	var out []Fragment
	for i, frags := range results {
		total.add(perRecord[i])
		out = append(out, frags...)
	}

	s.log.WithFields(logrus.Fields{
		"sessions":     total.Sessions,
		"duplicates":   total.DuplicateSessions,
		"markers":      total.Markers,
		"unattributed": total.Unattributed,
		"chair_turns":  total.ChairTurns,
		"short":        total.Short,
		"fragments":    total.Fragments,
	}).Info("segmented sessions")
	for name, n := range total.Hits {
		s.log.WithFields(logrus.Fields{"pattern": name, "matches": n}).Debug("boundary pattern hits")
	}

	return out, total, nil
}
