package folio

import "errors"

// Error categories returned by the ledger and the analytics. Callers match them with errors.Is,
// the returned errors wrap them with the details of the failure.
var (
	// ErrInvalidArgument reports a malformed request: non-positive shares or window, malformed
	// weights, unknown period, start after end, or a trade on a closed day.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNegativeComposition reports a sell that would drive a position below zero during replay.
	ErrNegativeComposition = errors.New("negative composition")
	// ErrPriceUnavailable reports that the price source has no price for a ticker on a day.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrDataMissing reports that a price series has no closing price on a requested day.
	ErrDataMissing = errors.New("data missing")
	// ErrInsufficientHistory reports fewer trading days than a moving average window.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrFutureDate reports a query or a trade dated after today.
	ErrFutureDate = errors.New("future date")
	// ErrUnknownPortfolio reports a portfolio name that was never created.
	ErrUnknownPortfolio = errors.New("unknown portfolio")
	// ErrUnknownTicker reports a ticker without any price series.
	ErrUnknownTicker = errors.New("unknown ticker")
)
