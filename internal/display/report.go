package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/plenary/internal/report"
)

// histogramWidth is the bar length of the largest histogram bucket.
const histogramWidth = 40

// PrintReport renders an evaluation report with styled headings and a bar
// histogram.
func PrintReport(r report.Report, writer io.Writer) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Green)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Yellow)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)
	barStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.Green)

	fmt.Fprintln(writer, titleStyle.Render("Evaluation Report"))
	fmt.Fprintf(writer, "%s %d speeches by %d speakers\n\n",
		mutedStyle.Render("rows:"), r.Rows, r.Speakers)

	fmt.Fprintln(writer, headingStyle.Render("Unique Values"))
	for _, u := range r.Unique {
		fmt.Fprintf(writer, "  %s (%d)\n", u.Column, len(u.Values))
		for _, v := range u.Values {
			fmt.Fprintf(writer, "    %-32s %s\n", v, mutedStyle.Render(fmt.Sprintf("%d", u.Counts[v])))
		}
	}

	d := r.WordCount
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, headingStyle.Render("Wordcount"))
	fmt.Fprintf(writer, "  count %d  mean %.1f  std %.1f\n", d.Count, d.Mean, d.Std)
	fmt.Fprintf(writer, "  min %.0f  25%% %.1f  50%% %.1f  75%% %.1f  max %.0f\n", d.Min, d.Q25, d.Q50, d.Q75, d.Max)

	if len(r.Histogram) == 0 {
		return
	}
	peak := 0
	for _, b := range r.Histogram {
		if b.Count > peak {
			peak = b.Count
		}
	}
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, headingStyle.Render("Histogram"))
	for _, b := range r.Histogram {
		bar := 0
		if peak > 0 {
			bar = b.Count * histogramWidth / peak
		}
		fmt.Fprintf(writer, "  %6.0f %s %s\n", b.Low,
			barStyle.Render(strings.Repeat("█", bar)), mutedStyle.Render(fmt.Sprintf("%d", b.Count)))
	}
}
