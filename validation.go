package folio

import (
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
)

// Validator checks trades before they reach a ledger.
type Validator struct {
	// Calendar tells which days are open for trading, defaults to date.Weekdays.
	Calendar date.Calendar
	// Today returns the current day, defaults to date.Today.
	Today func() date.Date
}

func (v *Validator) today() date.Date {
	if v == nil || v.Today == nil {
		return date.Today()
	}
	return v.Today()
}

func (v *Validator) calendar() date.Calendar {
	if v == nil || v.Calendar == nil {
		return date.Weekdays
	}
	return v.Calendar
}

// Trade checks a buy or sell request: a portfolio name, a ticker, a positive number of shares and a
// trading day that is not in the future.
func (v *Validator) Trade(name, ticker string, shares float64, on date.Date) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: a portfolio name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(ticker) == "" {
		return fmt.Errorf("%w: a ticker is required", ErrInvalidArgument)
	}
	if !finite(shares) || shares <= 0 {
		return fmt.Errorf("%w: number of shares must be greater than zero, got %v", ErrInvalidArgument, shares)
	}
	if on.IsZero() {
		return fmt.Errorf("%w: a transaction date is required", ErrInvalidArgument)
	}
	if on.After(v.today()) {
		return fmt.Errorf("%w: cannot trade on %s", ErrFutureDate, on)
	}
	if !v.calendar().IsBusinessDay(on) {
		return fmt.Errorf("%w: %s (%s) is not a trading day", ErrInvalidArgument, on, on.Weekday())
	}
	return nil
}
