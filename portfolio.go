package folio

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/folio/date"
)

// Composition is the number of shares held per ticker on a given day.
//
// Fully sold tickers remain with a zero quantity.
type Composition map[string]Quantity

// Tickers returns the tickers of the composition in ascending order.
func (c Composition) Tickers() []string { return slices.Sorted(maps.Keys(c)) }

// Position returns the shares held for ticker, zero if absent.
func (c Composition) Position(ticker string) Quantity { return c[ticker] }

// holding is an entry of the initial composition.
type holding struct {
	ticker string
	shares Quantity
}

// Portfolio is a named ledger: an initial composition and the list of buy and sell transactions
// recorded since.
//
// Transactions are kept in the order they were recorded, which is not necessarily chronological.
// Transactions are never modified or removed.
type Portfolio struct {
	name         string
	initial      []holding
	transactions []Transaction
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{name: name}
}

// Name returns the name of the portfolio.
func (p *Portfolio) Name() string { return p.name }

// Hold adds shares of ticker to the initial composition.
func (p *Portfolio) Hold(ticker string, shares float64) error {
	if !finite(shares) || shares <= 0 {
		return fmt.Errorf("%w: number of shares must be greater than zero, got %v", ErrInvalidArgument, shares)
	}
	return p.HoldQuantity(ticker, Q(shares))
}

// HoldQuantity is Hold for an exact quantity.
func (p *Portfolio) HoldQuantity(ticker string, shares Quantity) error {
	if ticker == "" {
		return fmt.Errorf("%w: empty ticker", ErrInvalidArgument)
	}
	if shares.IsNegative() {
		return fmt.Errorf("%w: initial shares of %s cannot be negative, got %v", ErrInvalidArgument, ticker, shares)
	}
	for i, h := range p.initial {
		if h.ticker == ticker {
			p.initial[i].shares = h.shares.Add(shares)
			return nil
		}
	}
	p.initial = append(p.initial, holding{ticker: ticker, shares: shares})
	return nil
}

// Buy records a purchase of shares of ticker on a day.
//
// Buy does not check the day, see [Validator] for that.
func (p *Portfolio) Buy(ticker string, shares float64, on date.Date) error {
	return p.record(Buy, ticker, shares, on)
}

// Sell records a sale of shares of ticker on a day.
//
// Sell does not check that the shares are held: this is detected when replaying the
// composition.
func (p *Portfolio) Sell(ticker string, shares float64, on date.Date) error {
	return p.record(Sell, ticker, shares, on)
}

func (p *Portfolio) record(kind Kind, ticker string, shares float64, on date.Date) error {
	if !finite(shares) || shares <= 0 {
		return fmt.Errorf("%w: number of shares must be greater than zero, got %v", ErrInvalidArgument, shares)
	}
	return p.Append(Transaction{Ticker: ticker, Shares: Q(shares), Date: on, Kind: kind})
}

// Append records an already built transaction.
func (p *Portfolio) Append(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	p.transactions = append(p.transactions, tx)
	return nil
}

// CompositionAt replays the ledger and returns the shares held at the end of day on.
//
// Transactions are applied in the order they were recorded, skipping those dated after on. It
// fails with ErrNegativeComposition as soon as a sell exceeds the shares held at that point of the
// replay.
func (p *Portfolio) CompositionAt(on date.Date) (Composition, error) {
	comp := make(Composition, len(p.initial))
	for _, h := range p.initial {
		comp[h.ticker] = h.shares
	}
	for i, tx := range p.transactions {
		if tx.Date.After(on) {
			continue
		}
		switch tx.Kind {
		case Buy:
			comp[tx.Ticker] = comp[tx.Ticker].Add(tx.Shares)
		case Sell:
			left := comp[tx.Ticker].Sub(tx.Shares)
			if left.IsNegative() {
				return nil, fmt.Errorf("%w: in %q transaction #%d on %s sells %v %s but only %v are held",
					ErrNegativeComposition, p.name, i, tx.Date, tx.Shares, tx.Ticker, comp[tx.Ticker])
			}
			comp[tx.Ticker] = left
		}
	}
	return comp, nil
}

// Initial iterates over the initial composition in the order tickers were first added.
func (p *Portfolio) Initial() iter.Seq2[string, Quantity] {
	return func(yield func(string, Quantity) bool) {
		for _, h := range p.initial {
			if !yield(h.ticker, h.shares) {
				return
			}
		}
	}
}

// Transactions returns an iterator that yields each transaction in its original order.
func (p *Portfolio) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range p.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Len returns the number of recorded transactions.
func (p *Portfolio) Len() int { return len(p.transactions) }

// Tickers returns every ticker referenced by the portfolio in ascending order.
func (p *Portfolio) Tickers() []string {
	seen := make(map[string]struct{})
	for _, h := range p.initial {
		seen[h.ticker] = struct{}{}
	}
	for _, tx := range p.transactions {
		seen[tx.Ticker] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
