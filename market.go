package folio

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/folio/date"
)

// PriceSource gives the closing price of a ticker on a day.
//
// Implementations return an error wrapping ErrPriceUnavailable when they have no price.
type PriceSource interface {
	Price(ticker string, on date.Date) (float64, error)
}

// Loader retrieves the full price series of a ticker, typically from a remote service or a cache.
type Loader interface {
	Load(ctx context.Context, ticker string) (*PriceSeries, error)
}

// Market holds the price series of a set of tickers.
type Market struct {
	loader Loader
	index  map[string]*PriceSeries
}

// NewMarket returns a new empty market. Missing series are retrieved from loader by Ensure, loader
// can be nil.
func NewMarket(loader Loader) *Market {
	return &Market{
		loader: loader,
		index:  make(map[string]*PriceSeries),
	}
}

// Add adds or replaces a price series.
func (m *Market) Add(series ...*PriceSeries) {
	for _, s := range series {
		m.index[s.Ticker()] = s
	}
}

// Has reports whether the market holds a series for ticker.
func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

// Series returns the price series of ticker.
func (m *Market) Series(ticker string) (*PriceSeries, bool) {
	s, ok := m.index[ticker]
	return s, ok
}

// Tickers returns the tickers of the market in ascending order.
func (m *Market) Tickers() []string {
	return slices.Sorted(maps.Keys(m.index))
}

// Ensure loads the series of every ticker not yet in the market.
//
// All tickers are attempted, failures are joined.
func (m *Market) Ensure(ctx context.Context, tickers ...string) error {
	var errs error
	for _, ticker := range tickers {
		if m.Has(ticker) {
			continue
		}
		if m.loader == nil {
			errs = errors.Join(errs, fmt.Errorf("%w: %q", ErrUnknownTicker, ticker))
			continue
		}
		s, err := m.loader.Load(ctx, ticker)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not load prices for %q: %w", ticker, err))
			continue
		}
		m.index[ticker] = s
	}
	return errs
}

// Price implements PriceSource with the exact closing price of the day.
func (m *Market) Price(ticker string, on date.Date) (float64, error) {
	s, ok := m.index[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: %w %q", ErrPriceUnavailable, ErrUnknownTicker, ticker)
	}
	p, ok := s.ClosingPrice(on)
	if !ok {
		return 0, fmt.Errorf("%w: no closing price for %s on %s", ErrPriceUnavailable, ticker, on)
	}
	return p, nil
}

// AsOf returns a PriceSource that uses the latest closing price on or before the requested day,
// looking back at most lookback calendar days. It values portfolios on weekends and holidays.
func (m *Market) AsOf(lookback int) PriceSource { return asOf{m, lookback} }

type asOf struct {
	m        *Market
	lookback int
}

func (a asOf) Price(ticker string, on date.Date) (float64, error) {
	s, ok := a.m.index[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: %w %q", ErrPriceUnavailable, ErrUnknownTicker, ticker)
	}
	day, p, ok := s.prices.ValueAsOf(on)
	if !ok || day.Before(on.Add(-a.lookback)) {
		return 0, fmt.Errorf("%w: no closing price for %s within %d days before %s", ErrPriceUnavailable, ticker, a.lookback, on)
	}
	return p, nil
}

// series returns the series of ticker or an ErrUnknownTicker error.
func (m *Market) series(ticker string) (*PriceSeries, error) {
	s, ok := m.index[ticker]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTicker, ticker)
	}
	return s, nil
}

// GainOrLoss returns the price change of ticker between two trading days.
func (m *Market) GainOrLoss(ticker string, start, end date.Date) (float64, error) {
	s, err := m.series(ticker)
	if err != nil {
		return 0, err
	}
	if start.After(end) {
		return 0, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidArgument, start, end)
	}
	if !s.HasDate(start) {
		return 0, fmt.Errorf("%w: start date %s is not a trading day of %s", ErrDataMissing, start, ticker)
	}
	if !s.HasDate(end) {
		return 0, fmt.Errorf("%w: end date %s is not a trading day of %s", ErrDataMissing, end, ticker)
	}
	return s.GainOrLoss(start, end)
}

// MovingAverage returns the window-day moving average of ticker on a trading day.
func (m *Market) MovingAverage(ticker string, on date.Date, window int) (float64, error) {
	s, err := m.series(ticker)
	if err != nil {
		return 0, err
	}
	if window < 1 {
		return 0, fmt.Errorf("%w: moving average window must be positive, got %d", ErrInvalidArgument, window)
	}
	if !s.HasDate(on) {
		return 0, fmt.Errorf("%w: %s is not a trading day of %s", ErrDataMissing, on, ticker)
	}
	return s.MovingAverage(on, window)
}

// Crossover returns the crossover days of ticker in [start, end].
func (m *Market) Crossover(ticker string, start, end date.Date, window int) ([]date.Date, error) {
	s, err := m.series(ticker)
	if err != nil {
		return nil, err
	}
	return s.Crossover(start, end, window)
}
