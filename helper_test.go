package folio

import (
	"fmt"
	"testing"

	"github.com/etnz/folio/date"
)

// day is a short hand for date.MustParse in tests.
func day(s string) date.Date { return date.MustParse(s) }

// fixedToday is the current day of tests.
func fixedToday() date.Date { return day("2024-12-31") }

// newSeries builds a series from day/close pairs given as "2024-01-02", 99.0, ...
func newSeries(t *testing.T, ticker string, pairs ...any) *PriceSeries {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("newSeries(%s): odd number of arguments", ticker)
	}
	s := NewPriceSeries(ticker)
	for i := 0; i < len(pairs); i += 2 {
		if err := s.Append(day(pairs[i].(string)), pairs[i+1].(float64)); err != nil {
			t.Fatalf("newSeries(%s): %v", ticker, err)
		}
	}
	return s
}

// goog is the GOOG series of the examples, a week of January 2024.
func goog(t *testing.T) *PriceSeries {
	return newSeries(t, "GOOG",
		"2024-01-02", 99.0,
		"2024-01-03", 100.0,
		"2024-01-04", 101.0,
		"2024-01-05", 100.5,
		"2024-01-08", 101.5,
		"2024-01-09", 102.0,
	)
}

// constant is a PriceSource pricing every ticker at a fixed price, every day.
type constant map[string]float64

func (c constant) Price(ticker string, on date.Date) (float64, error) {
	p, ok := c[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: no price for %s on %s", ErrPriceUnavailable, ticker, on)
	}
	return p, nil
}

// testValuer returns a valuer over prices with the test current day.
func testValuer(prices PriceSource) *Valuer {
	return &Valuer{Prices: prices, Today: fixedToday}
}
