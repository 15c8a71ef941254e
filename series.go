package folio

import (
	"fmt"
	"iter"
	"math"

	"github.com/etnz/folio/date"
)

// PriceSeries holds the daily closing prices of a single ticker.
//
// A missing day is always reported explicitly: a price of 0 is a valid price.
type PriceSeries struct {
	ticker string
	prices date.History[float64]
}

// NewPriceSeries returns an empty series for ticker.
func NewPriceSeries(ticker string) *PriceSeries {
	return &PriceSeries{ticker: ticker}
}

// Ticker returns the ticker of the series.
func (s *PriceSeries) Ticker() string { return s.ticker }

// Len returns the number of trading days in the series.
func (s *PriceSeries) Len() int { return s.prices.Len() }

// Append records the closing price on a day, replacing a previous value for that day.
func (s *PriceSeries) Append(on date.Date, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("%w: invalid price %v for %s on %s", ErrInvalidArgument, price, s.ticker, on)
	}
	s.prices.Append(on, price)
	return nil
}

// ClosingPrice returns the closing price on a day and true, or false if the series has no price
// that day.
func (s *PriceSeries) ClosingPrice(on date.Date) (float64, bool) { return s.prices.Get(on) }

// HasDate reports whether the series has a closing price on that day.
func (s *PriceSeries) HasDate(on date.Date) bool {
	_, ok := s.prices.Get(on)
	return ok
}

// Dates iterates over the trading days of the series in chronological order.
func (s *PriceSeries) Dates() iter.Seq[date.Date] { return s.prices.Days() }

// Prices iterates over the (day, closing price) pairs of the series in chronological order.
func (s *PriceSeries) Prices() iter.Seq2[date.Date, float64] { return s.prices.Values() }

// GainOrLoss returns the price change between start and end.
func (s *PriceSeries) GainOrLoss(start, end date.Date) (float64, error) {
	from, ok := s.prices.Get(start)
	if !ok {
		return 0, fmt.Errorf("%w: no closing price for %s on %s", ErrDataMissing, s.ticker, start)
	}
	to, ok := s.prices.Get(end)
	if !ok {
		return 0, fmt.Errorf("%w: no closing price for %s on %s", ErrDataMissing, s.ticker, end)
	}
	return to - from, nil
}

// MovingAverage returns the average of the last window closing prices dated on or before on.
//
// on itself does not have to be a trading day.
func (s *PriceSeries) MovingAverage(on date.Date, window int) (float64, error) {
	if window < 1 {
		return 0, fmt.Errorf("%w: moving average window must be positive, got %d", ErrInvalidArgument, window)
	}
	n := s.prices.Upto(on)
	if n < window {
		return 0, fmt.Errorf("%w: %s has %d trading days up to %s, need %d", ErrInsufficientHistory, s.ticker, n, on, window)
	}
	return s.average(n-window, n), nil
}

// average returns the mean of closing prices at positions [from, to).
func (s *PriceSeries) average(from, to int) float64 {
	sum := 0.0
	for i := from; i < to; i++ {
		_, p := s.prices.At(i)
		sum += p
	}
	return sum / float64(to-from)
}

// Crossover returns the trading days in [start, end] where the closing price is at or above its
// window-day moving average.
//
// Days are taken from the series itself, and only days preceded by at least window-1 other trading
// days are considered.
func (s *PriceSeries) Crossover(start, end date.Date, window int) ([]date.Date, error) {
	r, err := date.NewRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if window < 1 {
		return nil, fmt.Errorf("%w: moving average window must be positive, got %d", ErrInvalidArgument, window)
	}
	var crossovers []date.Date
	for i := window - 1; i < s.prices.Len(); i++ {
		on, price := s.prices.At(i)
		if !r.Contains(on) {
			continue
		}
		if price >= s.average(i+1-window, i+1) {
			crossovers = append(crossovers, on)
		}
	}
	return crossovers, nil
}
