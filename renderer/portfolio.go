package renderer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// ListMarkdown renders the names of the portfolios.
func ListMarkdown(names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolios\n\n")
	if len(names) == 0 {
		fmt.Fprintln(&b, "No portfolio yet, use `create` or `buy` to start one.")
		return b.String()
	}
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return b.String()
}

// CompositionMarkdown renders the shares held on a day. Fully sold tickers are listed with zero
// shares.
func CompositionMarkdown(name string, on date.Date, c folio.Composition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Composition of %s on %s\n\n", name, on)

	table := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Ticker | Shares |")
		fmt.Fprintln(w, "|:---|---:|")
	})
	for _, ticker := range c.Tickers() {
		table.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s |\n", ticker, c[ticker])
	}
	if !table.Printed() {
		fmt.Fprintln(&b, "no stocks")
	}
	return b.String()
}

// entry is a ticker and a number of shares.
type entry struct {
	Ticker string
	Shares folio.Quantity
}

// ledger is the data of the ledger templates.
type ledger struct {
	Name         string
	Initial      []entry
	Transactions []folio.Transaction
}

// LedgerMarkdown renders the initial composition and the transactions of a portfolio, in the order
// they were recorded.
func LedgerMarkdown(p *folio.Portfolio) string {
	l := ledger{Name: p.Name()}
	for ticker, shares := range p.Initial() {
		l.Initial = append(l.Initial, entry{ticker, shares})
	}
	for _, tx := range p.Transactions() {
		l.Transactions = append(l.Transactions, tx)
	}
	partials := map[string]string{
		"ledger_initial":      "ledger_initial.md",
		"ledger_transactions": "ledger_transactions.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// ValueMarkdown renders the value of a portfolio on a day.
func ValueMarkdown(name string, on date.Date, value float64, currency string) string {
	return fmt.Sprintf("# Value of %s on %s\n\n**%s**\n", name, on, Money(value, currency))
}

// DistributionLine is the value of one position.
type DistributionLine struct {
	Ticker string
	Value  float64
	Share  float64 // of the total value
}

// Distribution is the data of the distribution template.
type Distribution struct {
	Portfolio string
	Date      date.Date
	Currency  string
	Total     float64
	Lines     []DistributionLine
}

// NewDistribution sorts the distribution by ticker and computes each share of the total.
func NewDistribution(name string, on date.Date, dist map[string]float64, currency string) *Distribution {
	d := &Distribution{Portfolio: name, Date: on, Currency: currency}
	for _, v := range dist {
		d.Total += v
	}
	for ticker, v := range dist {
		line := DistributionLine{Ticker: ticker, Value: v}
		if d.Total != 0 {
			line.Share = v / d.Total
		}
		d.Lines = append(d.Lines, line)
	}
	slices.SortFunc(d.Lines, func(a, b DistributionLine) int { return strings.Compare(a.Ticker, b.Ticker) })
	return d
}

// DistributionMarkdown renders the value of every position of a portfolio.
func DistributionMarkdown(d *Distribution) string {
	partials := map[string]string{
		"distribution_title": "distribution_title.md",
	}
	return renderTemplate("distribution", "distribution.md", partials, d)
}

// rebalance is the data of the rebalance templates.
type rebalance struct {
	Plan      *folio.RebalancePlan
	Currency  string
	Committed bool
}

// RebalanceMarkdown renders a rebalance plan, committed tells whether its trades were recorded.
func RebalanceMarkdown(plan *folio.RebalancePlan, committed bool, currency string) string {
	partials := map[string]string{
		"rebalance_actions": "rebalance_actions.md",
	}
	return renderTemplate("rebalance", "rebalance.md", partials, rebalance{plan, currency, committed})
}
