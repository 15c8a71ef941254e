package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/folio"
)

const (
	// maxBars is the maximum number of lines of the ascii chart.
	maxBars = 30
	// barWidth is the number of stars of the largest value.
	barWidth = 50
	// defaultScale is used when no value is positive.
	defaultScale = 1000.0
)

// PerformanceMarkdown renders the samples as an ascii bar chart, one star per scale unit.
//
// Long ranges are thinned out to at most 30 evenly spaced bars, always keeping the first and the
// last samples.
func PerformanceMarkdown(name string, samples []folio.Sample, currency string) string {
	var b strings.Builder
	if len(samples) == 0 {
		fmt.Fprintf(&b, "# Performance of %s\n\nNo data in range.\n", name)
		return b.String()
	}
	first, last := samples[0].Date, samples[len(samples)-1].Date
	fmt.Fprintf(&b, "# Performance of %s from %s to %s\n\n", name, first, last)

	maxVal := 0.0
	for _, s := range samples {
		maxVal = max(maxVal, s.Value)
	}
	scale := defaultScale
	if maxVal > 0 {
		scale = maxVal / barWidth
	}

	fmt.Fprintln(&b, "```")
	for _, s := range thin(samples, maxBars) {
		fmt.Fprintf(&b, "%-10s: %s\n", s.Date, Bar(s.Value, scale))
	}
	fmt.Fprintln(&b, "```")
	fmt.Fprintf(&b, "\nScale: * = %s\n", Money(scale, currency))
	return b.String()
}

// Bar returns one star per full scale unit of value.
func Bar(value, scale float64) string {
	if scale <= 0 || value < scale {
		return ""
	}
	n := int(value / scale)
	// value/scale can fall just short of an integer for the largest value.
	if float64(n+1)*scale <= value {
		n++
	}
	return strings.Repeat("*", n)
}

// thin returns at most n evenly spaced samples, including the first and the last.
func thin(samples []folio.Sample, n int) []folio.Sample {
	if len(samples) <= n {
		return samples
	}
	out := make([]folio.Sample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, samples[i*(len(samples)-1)/(n-1)])
	}
	return out
}
