package folio

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// weightTolerance is the accepted distance between the sum of weights and 1.
const weightTolerance = 1e-6

// Weights are target shares of the total value of a portfolio, per ticker.
type Weights map[string]float64

// ParseWeights parses a list like "GOOG=0.5,AAPL=0.5".
func ParseWeights(s string) (Weights, error) {
	w := make(Weights)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ticker, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid weight %q want TICKER=WEIGHT", ErrInvalidArgument, item)
		}
		ticker = strings.TrimSpace(ticker)
		if _, dup := w[ticker]; dup {
			return nil, fmt.Errorf("%w: duplicate weight for %q", ErrInvalidArgument, ticker)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid weight %q: %w", ErrInvalidArgument, item, err)
		}
		w[ticker] = f
	}
	return w, w.Validate()
}

// Validate checks that every weight is in [0, 1] and that they sum to 1.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no target weights", ErrInvalidArgument)
	}
	sum := 0.0
	for ticker, weight := range w {
		if ticker == "" {
			return fmt.Errorf("%w: weight with an empty ticker", ErrInvalidArgument)
		}
		if math.IsNaN(weight) || weight < 0 || weight > 1 {
			return fmt.Errorf("%w: weight of %s must be between 0 and 1, got %v", ErrInvalidArgument, ticker, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1) >= weightTolerance {
		return fmt.Errorf("%w: weights must sum to 1, got %v", ErrInvalidArgument, sum)
	}
	return nil
}

// Tickers returns the tickers of the weights in ascending order.
func (w Weights) Tickers() []string { return slices.Sorted(maps.Keys(w)) }

// Action is a trade moving one position to its target value.
type Action struct {
	Kind    Kind
	Ticker  string
	Shares  Quantity
	Price   float64
	Current float64 // value held before the trade
	Target  float64 // value held after the trade
}

func (a Action) String() string {
	verb := "Buy"
	if a.Kind == Sell {
		verb = "Sell"
	}
	return fmt.Sprintf("%s %s shares of %s to rebalance", verb, a.Shares.StringFixed(2), a.Ticker)
}

// RebalancePlan is the list of trades bringing a portfolio to target weights on a day.
type RebalancePlan struct {
	Portfolio string
	Date      date.Date
	Total     float64
	Weights   Weights
	Actions   []Action
}

// Log returns one line per action, or the empty string when there is nothing to trade.
func (p *RebalancePlan) Log() string {
	var b strings.Builder
	for _, a := range p.Actions {
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// PlanRebalance computes the trades that would bring the portfolio to the target weights at the
// close of day on. It does not modify the portfolio.
//
// Targets are processed in ascending ticker order. Tickers held but absent from the weights are
// left untouched.
func (v *Valuer) PlanRebalance(p *Portfolio, on date.Date, weights Weights) (*RebalancePlan, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	dist, err := v.distribution(p, on)
	if err != nil {
		return nil, err
	}
	sum := total(dist)
	plan := &RebalancePlan{
		Portfolio: p.Name(),
		Date:      on,
		Total:     sum.InexactFloat64(),
		Weights:   weights,
	}
	for _, ticker := range weights.Tickers() {
		target := sum.Mul(decimal.NewFromFloat(weights[ticker]))
		current := dist[ticker]
		price, err := v.price(ticker, on)
		if err != nil {
			return nil, fmt.Errorf("cannot rebalance %q on %s: %w", p.Name(), on, err)
		}
		diff := target.Sub(current)
		if diff.IsZero() {
			continue
		}
		if price.IsZero() {
			return nil, fmt.Errorf("%w: cannot trade %s at a zero price on %s", ErrInvalidArgument, ticker, on)
		}
		shares := diff.Abs().Div(price)
		if !shares.IsPositive() {
			continue
		}
		kind := Buy
		if diff.IsNegative() {
			kind = Sell
		}
		plan.Actions = append(plan.Actions, Action{
			Kind:    kind,
			Ticker:  ticker,
			Shares:  Quantity{value: shares},
			Price:   price.InexactFloat64(),
			Current: current.InexactFloat64(),
			Target:  target.InexactFloat64(),
		})
	}
	return plan, nil
}

// Rebalance plans the trades toward the target weights and records them in the portfolio.
//
// Unlike the other Valuer methods, Rebalance modifies the portfolio. Every price is resolved before
// the first trade is recorded, so a failure leaves the portfolio unchanged.
func (v *Valuer) Rebalance(p *Portfolio, on date.Date, weights Weights) (*RebalancePlan, error) {
	plan, err := v.PlanRebalance(p, on, weights)
	if err != nil {
		return nil, err
	}
	for _, a := range plan.Actions {
		if err := p.Append(Transaction{Ticker: a.Ticker, Shares: a.Shares, Date: on, Kind: a.Kind}); err != nil {
			return plan, fmt.Errorf("cannot record %v: %w", a, err)
		}
	}
	return plan, nil
}
