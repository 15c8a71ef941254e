package folio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const retirementTxt = `Portfolio Name: retirement
Ticker Symbol: GOOG, Shares: 10
Ticker Symbol: AAPL, Shares: 2.5
Ticker Symbol: AAPL, Shares: 20, Date: 2024-01-02, Buy or Sell: BUY
Ticker Symbol: GOOG, Shares: 4, Date: 2024-01-03, Buy or Sell: SELL
`

func TestEncodePortfolio(t *testing.T) {
	p := NewPortfolio("retirement")
	p.Hold("GOOG", 10)
	p.Hold("AAPL", 2.5)
	p.Buy("AAPL", 20, day("2024-01-02"))
	p.Sell("GOOG", 4, day("2024-01-03"))

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() unexpected error: %v", err)
	}
	if diff := cmp.Diff(retirementTxt, buf.String()); diff != "" {
		t.Errorf("EncodePortfolio() mismatch (-want +got):\n%s", diff)
	}

	empty := NewPortfolio("empty")
	buf.Reset()
	if err := EncodePortfolio(&buf, empty); err != nil {
		t.Fatal(err)
	}
	if want := "Portfolio Name: empty\nno stocks\nno transactions\n"; buf.String() != want {
		t.Errorf("EncodePortfolio(empty) = %q, want %q", buf.String(), want)
	}
}

func TestDecodePortfolio(t *testing.T) {
	p, err := DecodePortfolio(strings.NewReader(retirementTxt))
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(retirementTxt, buf.String()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	comp, err := p.CompositionAt(day("2024-01-03"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"GOOG": "6", "AAPL": "22.5"}, shares(comp)); diff != "" {
		t.Errorf("CompositionAt() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePortfolio_Legacy(t *testing.T) {
	// Files written with floating point shares and a lowercase key.
	in := "Portfolio Name: legacy\nno stocks\n\nTicker Symbol: GOOG, Shares: 10.0, Date: 2024-01-02, Buy or sell: BUY\n"
	p, err := DecodePortfolio(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	if p.Name() != "legacy" || p.Len() != 1 {
		t.Errorf("DecodePortfolio() = %q with %d transactions, want legacy with 1", p.Name(), p.Len())
	}
	comp, err := p.CompositionAt(day("2024-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	if q := comp.Position("GOOG"); !q.Equal(Q(10)) {
		t.Errorf("Position(GOOG) = %v, want 10", q)
	}
}

func TestDecodePortfolio_Errors(t *testing.T) {
	testCases := map[string]string{
		"empty":          "",
		"missing name":   "Ticker Symbol: GOOG, Shares: 10\n",
		"empty name":     "Portfolio Name: \n",
		"named twice":    "Portfolio Name: a\nPortfolio Name: b\n",
		"missing shares": "Portfolio Name: a\nTicker Symbol: GOOG\n",
		"invalid shares": "Portfolio Name: a\nTicker Symbol: GOOG, Shares: ten\n",
		"negative hold":  "Portfolio Name: a\nTicker Symbol: GOOG, Shares: -1\n",
		"invalid date":   "Portfolio Name: a\nTicker Symbol: GOOG, Shares: 1, Date: 2024-02-30, Buy or Sell: BUY\n",
		"invalid kind":   "Portfolio Name: a\nTicker Symbol: GOOG, Shares: 1, Date: 2024-02-01, Buy or Sell: HOLD\n",
		"zero trade":     "Portfolio Name: a\nTicker Symbol: GOOG, Shares: 0, Date: 2024-02-01, Buy or Sell: BUY\n",
		"garbage":        "Portfolio Name: a\nhello\n",
	}
	for name, in := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodePortfolio(strings.NewReader(in)); err == nil {
				t.Errorf("DecodePortfolio(%q) succeeded, want error", in)
			}
		})
	}
}
