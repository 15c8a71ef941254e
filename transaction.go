package folio

import (
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
)

// Kind is the direction of a transaction.
type Kind int

const (
	Buy Kind = iota
	Sell
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "BUY" or "SELL", case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: unknown transaction kind %q", ErrInvalidArgument, s)
	}
}

// Transaction is an immutable buy or sell of shares of a ticker on a day.
type Transaction struct {
	Ticker string
	Shares Quantity
	Date   date.Date
	Kind   Kind
}

// NewTransaction returns a validated transaction.
func NewTransaction(kind Kind, ticker string, shares Quantity, on date.Date) (Transaction, error) {
	tx := Transaction{Ticker: ticker, Shares: shares, Date: on, Kind: kind}
	return tx, tx.Validate()
}

// Validate checks that the transaction is well formed.
func (tx Transaction) Validate() error {
	if tx.Ticker == "" {
		return fmt.Errorf("%w: empty ticker", ErrInvalidArgument)
	}
	if !tx.Shares.IsPositive() {
		return fmt.Errorf("%w: number of shares must be greater than zero, got %v", ErrInvalidArgument, tx.Shares)
	}
	if tx.Kind != Buy && tx.Kind != Sell {
		return fmt.Errorf("%w: unknown transaction kind %v", ErrInvalidArgument, tx.Kind)
	}
	return nil
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s %s %v %s", tx.Date, tx.Kind, tx.Shares, tx.Ticker)
}
