// Package plenary exposes the transcript segmentation and speech
// normalization pipeline to other programs.
package plenary

import (
	"context"

	"github.com/grovetools/plenary/internal/session"
	"github.com/grovetools/plenary/internal/speech"
	"github.com/grovetools/plenary/internal/transcript"
)

// Record is one plenary protocol.
type Record = session.Record

// Fragment is an attributed piece of protocol text.
type Fragment = transcript.Fragment

// Speech is one row of the final speech table.
type Speech = speech.Speech

// SegmentOptions configures segmentation.
type SegmentOptions = transcript.Options

// NormalizeOptions configures normalization.
type NormalizeOptions = speech.Options

// PartyLookup maps speaker names to parties.
type PartyLookup = speech.PartyLookup

// Options configures both pipeline stages.
type Options struct {
	Segmentation  SegmentOptions
	Normalization NormalizeOptions
}

// DefaultOptions returns the standard patterns and the strict rule set.
func DefaultOptions() Options {
	return Options{
		Segmentation:  transcript.DefaultOptions(),
		Normalization: speech.StrictOptions(),
	}
}

// NewPartyLookup builds a lookup from the built-in table with overrides applied.
func NewPartyLookup(overrides map[string]string) *PartyLookup {
	return speech.DefaultPartyLookup().With(overrides)
}

// Segment splits records into attributed fragments.
func Segment(ctx context.Context, records []Record, opts SegmentOptions) ([]Fragment, error) {
	frags, _, err := transcript.NewSegmenter(opts).SegmentAll(ctx, records)
	return frags, err
}

// Normalize turns fragments into the final speech table.
func Normalize(frags []Fragment, opts NormalizeOptions) []Speech {
	speeches, _ := speech.NewNormalizer(opts).Normalize(frags)
	return speeches
}

// Process runs segmentation and normalization in sequence.
func Process(ctx context.Context, records []Record, opts Options) ([]Speech, error) {
	frags, err := Segment(ctx, records, opts.Segmentation)
	if err != nil {
		return nil, err
	}
	return Normalize(frags, opts.Normalization), nil
}
