package report

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/grovetools/plenary/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func speeches(counts ...int) []speech.Speech {
	parties := []string{"SPD", "CDU/CSU", "SPD", "FDP"}
	out := make([]speech.Speech, len(counts))
	for i, c := range counts {
		out[i] = speech.Speech{
			ID:        i + 1,
			Speaker:   []string{"A", "B"}[i%2],
			Party:     parties[i%len(parties)],
			Position:  speech.DefaultPosition,
			WordCount: c,
		}
	}
	return out
}

func TestDescribe(t *testing.T) {
	r := Build(speeches(1, 2, 3, 4), 4)
	d := r.WordCount

	assert.Equal(t, 4, d.Count)
	assert.InDelta(t, 2.5, d.Mean, 1e-9)
	assert.InDelta(t, 1.2909944, d.Std, 1e-6)
	assert.Equal(t, 1.0, d.Min)
	assert.InDelta(t, 1.75, d.Q25, 1e-9)
	assert.InDelta(t, 2.5, d.Q50, 1e-9)
	assert.InDelta(t, 3.25, d.Q75, 1e-9)
	assert.Equal(t, 4.0, d.Max)
	assert.Equal(t, 4, r.Rows)
	assert.Equal(t, 2, r.Speakers)
}

func TestDescribeSmallInputs(t *testing.T) {
	single := Build(speeches(7), 0).WordCount
	assert.Equal(t, 7.0, single.Mean)
	assert.True(t, math.IsNaN(single.Std))

	empty := Build(nil, 0)
	assert.True(t, math.IsNaN(empty.WordCount.Mean))
	assert.Empty(t, empty.Histogram)
}

func TestUniqueValues(t *testing.T) {
	r := Build(speeches(1, 2, 3, 4), 0)
	require.Len(t, r.Unique, 2)

	party := r.Unique[0]
	assert.Equal(t, "party", party.Column)
	assert.Equal(t, []string{"SPD", "CDU/CSU", "FDP"}, party.Values)
	assert.Equal(t, 2, party.Counts["SPD"])

	position := r.Unique[1]
	assert.Equal(t, []string{speech.DefaultPosition}, position.Values)
}

func TestHistogram(t *testing.T) {
	r := Build(speeches(0, 10, 10, 20), 2)
	require.Len(t, r.Histogram, 2)
	assert.Equal(t, Bucket{Low: 0, High: 10, Count: 1}, r.Histogram[0])
	assert.Equal(t, Bucket{Low: 10, High: 20, Count: 3}, r.Histogram[1])

	total := 0
	for _, b := range Build(speeches(3, 9, 27, 81, 243), DefaultBins).Histogram {
		total += b.Count
	}
	assert.Equal(t, 5, total)
}

func TestHistogramSingleValue(t *testing.T) {
	r := Build(speeches(5, 5), 1)
	require.Len(t, r.Histogram, 1)
	assert.Equal(t, Bucket{Low: 4.5, High: 5.5, Count: 2}, r.Histogram[0])
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(speeches(7), 1).WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "=== Evaluation Report ===")
	assert.Contains(t, out, "party: 1 unique values (SPD)")
	assert.Contains(t, out, "speaker: Skipped reporting unique values")
	assert.Contains(t, out, "mean       7.000000")
	assert.Contains(t, out, "std             NaN")
}

func TestReportJSONEncodesNaNAsNull(t *testing.T) {
	data, err := json.Marshal(Build(speeches(7), 1))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"std":null`)
	assert.Contains(t, string(data), `"mean":7`)
}
