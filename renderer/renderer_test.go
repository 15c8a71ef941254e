package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

var day = date.MustParse

// tables counts the GFM tables in a markdown document.
func tables(t *testing.T, md string) int {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser().Parse(text.NewReader(src))
	n := 0
	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == east.KindTable {
			n++
		}
		return ast.WalkContinue, nil
	})
	return n
}

// contains fails the test for every line missing in got.
func contains(t *testing.T, got string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(got, l) {
			t.Errorf("missing %q in:\n%s", l, got)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		value float64
		code  string
		want  string
	}{
		{1234.5, "USD", "$1,234.50"},
		{0, "USD", "$0.00"},
		{0.005, "USD", "$0.01"},
		{1000000, "", "$1,000,000.00"},
	}
	for _, tt := range tests {
		if got := Money(tt.value, tt.code); got != tt.want {
			t.Errorf("Money(%v, %q) = %q, want %q", tt.value, tt.code, got, tt.want)
		}
	}
	if got := SignedMoney(5, "USD"); got != "+$5.00" {
		t.Errorf("SignedMoney(5) = %q, want +$5.00", got)
	}
}

func TestListMarkdown(t *testing.T) {
	got := ListMarkdown([]string{"retirement", "tech"})
	want := "# Portfolios\n\n- retirement\n- tech\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListMarkdown() mismatch (-want +got):\n%s", diff)
	}
	contains(t, ListMarkdown(nil), "No portfolio yet")
}

func TestCompositionMarkdown(t *testing.T) {
	c := folio.Composition{"GOOG": folio.Q(10), "AAPL": folio.Q(5), "MSFT": folio.Q(0)}
	got := CompositionMarkdown("tech", day("2024-01-05"), c)
	want := "# Composition of tech on 2024-01-05\n\n" +
		"| Ticker | Shares |\n" +
		"|:---|---:|\n" +
		"| AAPL | 5 |\n" +
		"| GOOG | 10 |\n" +
		"| MSFT | 0 |\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CompositionMarkdown() mismatch (-want +got):\n%s", diff)
	}
	if n := tables(t, got); n != 1 {
		t.Errorf("CompositionMarkdown() has %d tables, want 1", n)
	}

	empty := CompositionMarkdown("tech", day("2024-01-05"), folio.Composition{})
	want = "# Composition of tech on 2024-01-05\n\nno stocks\n"
	if diff := cmp.Diff(want, empty); diff != "" {
		t.Errorf("CompositionMarkdown(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestLedgerMarkdown(t *testing.T) {
	p := folio.NewPortfolio("tech")
	if err := p.Hold("GOOG", 10); err != nil {
		t.Fatal(err)
	}
	if err := p.Sell("GOOG", 2.5, day("2024-01-04")); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("AAPL", 3, day("2024-01-03")); err != nil {
		t.Fatal(err)
	}

	got := LedgerMarkdown(p)
	contains(t, got,
		"# tech",
		"| GOOG | 10 |",
		"| 0 | 2024-01-04 | SELL | GOOG | 2.5 |",
		"| 1 | 2024-01-03 | BUY | AAPL | 3 |",
	)
	if n := tables(t, got); n != 2 {
		t.Errorf("LedgerMarkdown() has %d tables, want 2:\n%s", n, got)
	}

	contains(t, LedgerMarkdown(folio.NewPortfolio("empty")), "no stocks", "no transactions")
}

func TestDistributionMarkdown(t *testing.T) {
	d := NewDistribution("tech", day("2024-01-05"), map[string]float64{"GOOG": 300, "AAPL": 100}, "USD")
	if d.Total != 400 {
		t.Errorf("Total = %v, want 400", d.Total)
	}
	want := []DistributionLine{
		{Ticker: "AAPL", Value: 100, Share: 0.25},
		{Ticker: "GOOG", Value: 300, Share: 0.75},
	}
	if diff := cmp.Diff(want, d.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}

	got := DistributionMarkdown(d)
	contains(t, got,
		"# Distribution of tech on 2024-01-05",
		"| AAPL | $100.00 | 25.00% |",
		"| GOOG | $300.00 | 75.00% |",
		"| **Total** | **$400.00** | |",
	)
	if n := tables(t, got); n != 1 {
		t.Errorf("DistributionMarkdown() has %d tables, want 1:\n%s", n, got)
	}
}

func TestRebalanceMarkdown(t *testing.T) {
	plan := &folio.RebalancePlan{
		Portfolio: "tech",
		Date:      day("2024-01-05"),
		Total:     1000,
		Actions: []folio.Action{
			{Kind: folio.Sell, Ticker: "AAPL", Shares: folio.Q(2), Price: 100, Current: 700, Target: 500},
			{Kind: folio.Buy, Ticker: "GOOG", Shares: folio.Q(4), Price: 50, Current: 300, Target: 500},
		},
	}

	got := RebalanceMarkdown(plan, false, "USD")
	contains(t, got,
		"# Rebalance of tech on 2024-01-05",
		"Total value: $1,000.00",
		"| SELL | AAPL | 2.00 | $100.00 | $700.00 | $500.00 |",
		"| BUY | GOOG | 4.00 | $50.00 | $300.00 | $500.00 |",
		"Plan only, nothing recorded.",
	)
	if n := tables(t, got); n != 1 {
		t.Errorf("RebalanceMarkdown() has %d tables, want 1:\n%s", n, got)
	}
	contains(t, RebalanceMarkdown(plan, true, "USD"), "2 transactions recorded.")

	balanced := &folio.RebalancePlan{Portfolio: "tech", Date: day("2024-01-05"), Total: 1000}
	contains(t, RebalanceMarkdown(balanced, false, "USD"), "already balanced")
}

func TestMarketMarkdown(t *testing.T) {
	got := GainMarkdown("GOOG", day("2024-01-02"), day("2024-01-09"), 3, "USD")
	contains(t, got, "# GOOG from 2024-01-02 to 2024-01-09", "Gain: **+$3.00** per share")
	contains(t, GainMarkdown("GOOG", day("2024-01-02"), day("2024-01-09"), -1.5, "USD"), "Loss:")

	got = MovingAverageMarkdown("GOOG", day("2024-01-09"), 3, 101.25, "USD")
	contains(t, got, "3-day moving average: **$101.25**")

	got = CrossoverMarkdown("GOOG", day("2024-01-02"), day("2024-01-09"), 2, []date.Date{day("2024-01-03"), day("2024-01-08")})
	contains(t, got, "| 2024-01-03 | Wednesday |", "| 2024-01-08 | Monday |", "2 crossover days.")
	if n := tables(t, got); n != 1 {
		t.Errorf("CrossoverMarkdown() has %d tables, want 1:\n%s", n, got)
	}

	got = CrossoverMarkdown("GOOG", day("2024-01-02"), day("2024-01-09"), 2, nil)
	contains(t, got, "No crossover in this range.")
	if strings.Contains(got, "crossover days.") {
		t.Errorf("empty CrossoverMarkdown() printed a footer:\n%s", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, scale float64
		want         int
	}{
		{100, 2, 50},
		{99.9, 2, 49},
		{1, 2, 0},
		{0, 2, 0},
		{-10, 2, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.scale); got != strings.Repeat("*", tt.want) {
			t.Errorf("Bar(%v, %v) = %q, want %d stars", tt.value, tt.scale, got, tt.want)
		}
	}
}

func TestPerformanceMarkdown(t *testing.T) {
	samples := []folio.Sample{
		{Date: day("2024-01-02"), Value: 100},
		{Date: day("2024-01-09"), Value: 50},
	}
	got := PerformanceMarkdown("tech", samples, "USD")
	want := "# Performance of tech from 2024-01-02 to 2024-01-09\n\n" +
		"```\n" +
		"2024-01-02: " + strings.Repeat("*", 50) + "\n" +
		"2024-01-09: " + strings.Repeat("*", 25) + "\n" +
		"```\n" +
		"\nScale: * = $2.00\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PerformanceMarkdown() mismatch (-want +got):\n%s", diff)
	}

	zero := PerformanceMarkdown("tech", []folio.Sample{{Date: day("2024-01-02")}}, "USD")
	contains(t, zero, "2024-01-02: \n", "Scale: * = $1,000.00")

	contains(t, PerformanceMarkdown("tech", nil, "USD"), "No data in range.")
}

func TestThin(t *testing.T) {
	var samples []folio.Sample
	start := day("2024-01-01")
	for i := range 365 {
		samples = append(samples, folio.Sample{Date: start.Add(i), Value: float64(i)})
	}
	got := thin(samples, maxBars)
	if len(got) != maxBars {
		t.Fatalf("thin() returned %d samples, want %d", len(got), maxBars)
	}
	if got[0] != samples[0] || got[len(got)-1] != samples[len(samples)-1] {
		t.Errorf("thin() = %v...%v, want the first and last samples", got[0], got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Date.Before(got[i].Date) {
			t.Errorf("thin() is not increasing at %d: %v then %v", i, got[i-1].Date, got[i].Date)
		}
	}

	short := samples[:10]
	if diff := cmp.Diff(short, thin(short, maxBars), cmp.AllowUnexported(date.Date{})); diff != "" {
		t.Errorf("thin(short) mismatch (-want +got):\n%s", diff)
	}
}

func TestPerformanceChart(t *testing.T) {
	samples := []folio.Sample{
		{Date: day("2024-01-02"), Value: 1000},
		{Date: day("2024-02-01"), Value: 1100},
		{Date: day("2024-03-01"), Value: 1050},
	}
	png, err := PerformanceChart("tech", samples, "USD")
	if err != nil {
		t.Fatalf("PerformanceChart() unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("PerformanceChart() did not return a PNG image")
	}

	if _, err := PerformanceChart("tech", samples[:1], "USD"); err == nil {
		t.Error("PerformanceChart() with one sample: expected an error")
	}
}
