// Package report summarizes a final speech table: word count statistics,
// distinct parties and positions, and a word count histogram.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/grovetools/plenary/internal/speech"
)

// DefaultBins is the number of histogram buckets.
const DefaultBins = 50

// Describe holds summary statistics of a numeric column. Std is the sample
// standard deviation and quartiles are linearly interpolated.
type Describe struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// MarshalJSON encodes undefined statistics as null.
func (d Describe) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`
		Min   *float64 `json:"min"`
		Q25   *float64 `json:"q25"`
		Q50   *float64 `json:"q50"`
		Q75   *float64 `json:"q75"`
		Max   *float64 `json:"max"`
	}{d.Count, finite(d.Mean), finite(d.Std), finite(d.Min), finite(d.Q25), finite(d.Q50), finite(d.Q75), finite(d.Max)})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Unique lists the distinct values of one column in order of first appearance.
type Unique struct {
	Column string         `json:"column"`
	Values []string       `json:"values"`
	Counts map[string]int `json:"counts"`
}

// Bucket is one histogram bin covering [Low, High).
type Bucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Report is the evaluation of one speech table.
type Report struct {
	Rows      int      `json:"rows"`
	Speakers  int      `json:"speakers"`
	WordCount Describe `json:"wordcount"`
	Unique    []Unique `json:"unique"`
	Histogram []Bucket `json:"histogram"`
}

// Build evaluates speeches. bins <= 0 uses DefaultBins.
func Build(speeches []speech.Speech, bins int) Report {
	if bins <= 0 {
		bins = DefaultBins
	}

	counts := make([]float64, len(speeches))
	speakers := make(map[string]struct{})
	for i, s := range speeches {
		counts[i] = float64(s.WordCount)
		speakers[s.Speaker] = struct{}{}
	}

	return Report{
		Rows:      len(speeches),
		Speakers:  len(speakers),
		WordCount: describe(counts),
		Unique: []Unique{
			uniqueOf("party", speeches, func(s speech.Speech) string { return s.Party }),
			uniqueOf("position", speeches, func(s speech.Speech) string { return s.Position }),
		},
		Histogram: histogram(counts, bins),
	}
}

func describe(values []float64) Describe {
	d := Describe{Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		d.Mean, d.Std, d.Min, d.Q25, d.Q50, d.Q75, d.Max = nan, nan, nan, nan, nan, nan, nan
		return d
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	d.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - d.Mean) * (v - d.Mean)
		}
		d.Std = math.Sqrt(sq / float64(len(sorted)-1))
	} else {
		d.Std = math.NaN()
	}

	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q25 = quantile(sorted, 0.25)
	d.Q50 = quantile(sorted, 0.50)
	d.Q75 = quantile(sorted, 0.75)
	return d
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func uniqueOf(column string, speeches []speech.Speech, get func(speech.Speech) string) Unique {
	u := Unique{Column: column, Counts: make(map[string]int)}
	for _, s := range speeches {
		v := get(s)
		if _, ok := u.Counts[v]; !ok {
			u.Values = append(u.Values, v)
		}
		u.Counts[v]++
	}
	return u
}

// histogram splits [min, max] of values into equal-width bins. The last bin
// is closed on the right.
func histogram(values []float64, bins int) []Bucket {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Low = lo + float64(i)*width
		buckets[i].High = lo + float64(i+1)*width
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		buckets[i].Count++
	}
	return buckets
}

// WriteText writes the plain-text evaluation report.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString("=== Evaluation Report ===\n")

	b.WriteString("\n--- Unique Values ---\n")
	b.WriteString("speaker: Skipped reporting unique values, because list is too long.\n")
	for _, u := range r.Unique {
		fmt.Fprintf(&b, "%s: %d unique values (%s)\n", u.Column, len(u.Values), strings.Join(u.Values, ", "))
	}

	b.WriteString("\n--- Statistical Summary ---\n")
	d := r.WordCount
	fmt.Fprintf(&b, "%-6s %12s\n", "", "wordcount")
	fmt.Fprintf(&b, "%-6s %12s\n", "count", formatFloat(float64(d.Count)))
	for _, row := range []struct {
		label string
		value float64
	}{
		{"mean", d.Mean}, {"std", d.Std}, {"min", d.Min},
		{"25%", d.Q25}, {"50%", d.Q50}, {"75%", d.Q75}, {"max", d.Max},
	} {
		fmt.Fprintf(&b, "%-6s %12s\n", row.label, formatFloat(row.value))
	}

	if len(r.Histogram) > 0 {
		b.WriteString("\n--- Wordcount Histogram ---\n")
		for _, bucket := range r.Histogram {
			fmt.Fprintf(&b, "%8.0f-%-8.0f %6d\n", bucket.Low, bucket.High, bucket.Count)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}
