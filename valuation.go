package folio

import (
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Valuer values portfolios with a price source.
type Valuer struct {
	Prices PriceSource
	// Today returns the current day, defaults to date.Today.
	Today func() date.Date
}

// NewValuer returns a Valuer using prices.
func NewValuer(prices PriceSource) *Valuer { return &Valuer{Prices: prices} }

func (v *Valuer) today() date.Date {
	if v.Today == nil {
		return date.Today()
	}
	return v.Today()
}

// checkDay rejects days after today.
func (v *Valuer) checkDay(on date.Date) error {
	if on.IsZero() {
		return fmt.Errorf("%w: a valuation date is required", ErrInvalidArgument)
	}
	if today := v.today(); on.After(today) {
		return fmt.Errorf("%w: cannot value a portfolio on %s, today is %s", ErrFutureDate, on, today)
	}
	return nil
}

// price returns the price of ticker as a decimal.
func (v *Valuer) price(ticker string, on date.Date) (decimal.Decimal, error) {
	p, err := v.Prices.Price(ticker, on)
	if err != nil {
		return decimal.Zero, err
	}
	if !finite(p) {
		return decimal.Zero, fmt.Errorf("%w: invalid price %v for %s on %s", ErrPriceUnavailable, p, ticker, on)
	}
	return decimal.NewFromFloat(p), nil
}

// distribution returns the exact market value of every position held (shares > 0) on a day.
func (v *Valuer) distribution(p *Portfolio, on date.Date) (map[string]decimal.Decimal, error) {
	if err := v.checkDay(on); err != nil {
		return nil, err
	}
	comp, err := p.CompositionAt(on)
	if err != nil {
		return nil, err
	}
	dist := make(map[string]decimal.Decimal, len(comp))
	for _, ticker := range comp.Tickers() {
		shares := comp[ticker]
		if !shares.IsPositive() {
			continue
		}
		price, err := v.price(ticker, on)
		if err != nil {
			return nil, fmt.Errorf("cannot value %q on %s: %w", p.Name(), on, err)
		}
		dist[ticker] = shares.value.Mul(price)
	}
	return dist, nil
}

func total(dist map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range dist {
		sum = sum.Add(v)
	}
	return sum
}

// Value returns the market value of the portfolio at the close of day on.
//
// Only positions with shares are valued; a missing price for any of them fails the whole
// valuation.
func (v *Valuer) Value(p *Portfolio, on date.Date) (float64, error) {
	dist, err := v.distribution(p, on)
	if err != nil {
		return 0, err
	}
	return total(dist).InexactFloat64(), nil
}

// Distribution returns the market value of every position held at the close of day on.
//
// Fully sold tickers are not part of the distribution.
func (v *Valuer) Distribution(p *Portfolio, on date.Date) (map[string]float64, error) {
	dist, err := v.distribution(p, on)
	if err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(dist))
	for ticker, value := range dist {
		values[ticker] = value.InexactFloat64()
	}
	return values, nil
}
