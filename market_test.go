package folio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var errNotFound = errors.New("not found")

// fakeLoader serves series from memory and counts calls.
type fakeLoader struct {
	series map[string]*PriceSeries
	calls  int
}

func (l *fakeLoader) Load(ctx context.Context, ticker string) (*PriceSeries, error) {
	l.calls++
	s, ok := l.series[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotFound, ticker)
	}
	return s, nil
}

func TestMarket_Price(t *testing.T) {
	m := NewMarket(nil)
	m.Add(goog(t))

	p, err := m.Price("GOOG", day("2024-01-09"))
	if err != nil || p != 102 {
		t.Errorf("Price(GOOG, 2024-01-09) = %v, %v, want 102, nil", p, err)
	}

	_, err = m.Price("GOOG", day("2024-01-06"))
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("Price(GOOG, saturday) error = %v, want ErrPriceUnavailable", err)
	}

	_, err = m.Price("MSFT", day("2024-01-09"))
	if !errors.Is(err, ErrPriceUnavailable) || !errors.Is(err, ErrUnknownTicker) {
		t.Errorf("Price(MSFT) error = %v, want ErrPriceUnavailable and ErrUnknownTicker", err)
	}
}

func TestMarket_AsOf(t *testing.T) {
	m := NewMarket(nil)
	m.Add(goog(t))

	testCases := []struct {
		on       string
		lookback int
		want     float64
		wantErr  bool
	}{
		{on: "2024-01-05", lookback: 0, want: 100.5},
		{on: "2024-01-07", lookback: 3, want: 100.5},
		{on: "2024-01-07", lookback: 1, wantErr: true},
		{on: "2024-03-01", lookback: 7, wantErr: true},
		{on: "2023-12-31", lookback: 7, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s-%d", tc.on, tc.lookback), func(t *testing.T) {
			got, err := m.AsOf(tc.lookback).Price("GOOG", day(tc.on))
			if tc.wantErr {
				if !errors.Is(err, ErrPriceUnavailable) {
					t.Errorf("AsOf(%d).Price(%s) error = %v, want ErrPriceUnavailable", tc.lookback, tc.on, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("AsOf(%d).Price(%s) = %v, %v, want %v", tc.lookback, tc.on, got, err, tc.want)
			}
		})
	}
}

func TestMarket_Ensure(t *testing.T) {
	loader := &fakeLoader{series: map[string]*PriceSeries{"GOOG": goog(t)}}
	m := NewMarket(loader)

	if err := m.Ensure(context.Background(), "GOOG", "GOOG"); err != nil {
		t.Fatalf("Ensure(GOOG) unexpected error: %v", err)
	}
	if loader.calls != 1 {
		t.Errorf("Ensure(GOOG, GOOG) loaded %d times, want 1", loader.calls)
	}

	err := m.Ensure(context.Background(), "AAPL", "GOOG", "MSFT")
	if !errors.Is(err, errNotFound) {
		t.Fatalf("Ensure() error = %v, want errNotFound", err)
	}
	for _, ticker := range []string{"AAPL", "MSFT"} {
		if !strings.Contains(err.Error(), ticker) {
			t.Errorf("Ensure() error %q does not mention %s", err, ticker)
		}
	}
	if diff := cmp.Diff([]string{"GOOG"}, m.Tickers()); diff != "" {
		t.Errorf("Tickers() mismatch (-want +got):\n%s", diff)
	}

	if err := NewMarket(nil).Ensure(context.Background(), "GOOG"); !errors.Is(err, ErrUnknownTicker) {
		t.Errorf("Ensure() without loader error = %v, want ErrUnknownTicker", err)
	}
}

func TestMarket_Analytics(t *testing.T) {
	m := NewMarket(nil)
	m.Add(goog(t))

	if got, err := m.GainOrLoss("GOOG", day("2024-01-02"), day("2024-01-09")); err != nil || got != 3 {
		t.Errorf("GainOrLoss(GOOG) = %v, %v, want 3, nil", got, err)
	}
	if _, err := m.GainOrLoss("GOOG", day("2024-01-09"), day("2024-01-02")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GainOrLoss() with start after end error = %v, want ErrInvalidArgument", err)
	}
	if _, err := m.GainOrLoss("GOOG", day("2024-01-02"), day("2024-01-07")); !errors.Is(err, ErrDataMissing) {
		t.Errorf("GainOrLoss() to a sunday error = %v, want ErrDataMissing", err)
	}
	if _, err := m.GainOrLoss("AAPL", day("2024-01-02"), day("2024-01-09")); !errors.Is(err, ErrUnknownTicker) {
		t.Errorf("GainOrLoss(AAPL) error = %v, want ErrUnknownTicker", err)
	}

	if got, err := m.MovingAverage("GOOG", day("2024-01-09"), 2); err != nil || got != 101.75 {
		t.Errorf("MovingAverage(GOOG) = %v, %v, want 101.75, nil", got, err)
	}
	if _, err := m.MovingAverage("GOOG", day("2024-01-06"), 2); !errors.Is(err, ErrDataMissing) {
		t.Errorf("MovingAverage() on a saturday error = %v, want ErrDataMissing", err)
	}

	got, err := m.Crossover("GOOG", day("2024-01-02"), day("2024-01-09"), 2)
	if err != nil {
		t.Fatalf("Crossover() unexpected error: %v", err)
	}
	// 100 >= 99.5, 101 >= 100.5, 100.5 < 100.75, 101.5 >= 101, 102 >= 101.75
	if len(got) != 4 {
		t.Errorf("Crossover(GOOG) = %v, want 4 days", got)
	}
}
