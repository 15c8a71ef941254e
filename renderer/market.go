package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/folio/date"
)

// GainMarkdown renders the price change of a ticker between two days.
func GainMarkdown(ticker string, start, end date.Date, gain float64, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s from %s to %s\n\n", ticker, start, end)
	word := "Gain"
	if gain < 0 {
		word = "Loss"
	}
	fmt.Fprintf(&b, "%s: **%s** per share\n", word, SignedMoney(gain, currency))
	return b.String()
}

// MovingAverageMarkdown renders the moving average of a ticker on a day.
func MovingAverageMarkdown(ticker string, on date.Date, window int, average float64, currency string) string {
	return fmt.Sprintf("# %s on %s\n\n%d-day moving average: **%s**\n", ticker, on, window, Money(average, currency))
}

// CrossoverMarkdown renders the days where a ticker closed at or above its moving average.
func CrossoverMarkdown(ticker string, start, end date.Date, window int, days []date.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d-day crossovers of %s from %s to %s\n\n", window, ticker, start, end)

	list := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Date | Weekday |")
		fmt.Fprintln(w, "|:---|:---|")
	}).Footer(func(w io.Writer) {
		fmt.Fprintf(w, "\n%d crossover days.\n", len(days))
	})
	for _, d := range days {
		list.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s |\n", d, d.Weekday())
	}
	list.PrintFooter(&b)
	if !list.Printed() {
		fmt.Fprintln(&b, "No crossover in this range.")
	}
	return b.String()
}
