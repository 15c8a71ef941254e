package folio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/folio/date"
)

// The portfolio text format is line oriented and human-readable:
//
//	Portfolio Name: retirement
//	Ticker Symbol: GOOG, Shares: 10
//	Ticker Symbol: AAPL, Shares: 20, Date: 2024-01-02, Buy or Sell: BUY
//
// The name comes first, then the initial composition and the transactions in their recorded
// order. Lines with a date are transactions, the other ones are initial composition entries.
// "no stocks" and "no transactions" mark empty sections.
const (
	keyName   = "Portfolio Name"
	keyTicker = "Ticker Symbol"
	keyShares = "Shares"
	keyDate   = "Date"
	keyKind   = "Buy or Sell"
	noStocks  = "no stocks"
	noTrades  = "no transactions"
)

// EncodePortfolio writes p in the portfolio text format.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s: %s\n", keyName, p.Name())

	empty := true
	for ticker, shares := range p.Initial() {
		empty = false
		fmt.Fprintf(bw, "%s: %s, %s: %s\n", keyTicker, ticker, keyShares, shares)
	}
	if empty {
		fmt.Fprintln(bw, noStocks)
	}

	if p.Len() == 0 {
		fmt.Fprintln(bw, noTrades)
	}
	for _, tx := range p.Transactions() {
		fmt.Fprintf(bw, "%s: %s, %s: %s, %s: %s, %s: %s\n",
			keyTicker, tx.Ticker, keyShares, tx.Shares, keyDate, tx.Date, keyKind, tx.Kind)
	}
	return bw.Flush()
}

// DecodePortfolio reads a portfolio in the text format.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var p *Portfolio
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if name, ok := strings.CutPrefix(line, keyName+":"); ok {
			if p != nil {
				return nil, fmt.Errorf("line %d: portfolio %q is named twice", i, p.Name())
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("line %d: empty portfolio name", i)
			}
			p = NewPortfolio(name)
			continue
		}
		if p == nil {
			return nil, fmt.Errorf("line %d: missing %q header", i, keyName)
		}
		if strings.EqualFold(line, noStocks) || strings.EqualFold(line, noTrades) {
			continue
		}
		if err := decodeEntry(p, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("missing %q header", keyName)
	}
	return p, nil
}

// decodeEntry parses an initial composition entry or a transaction and adds it to p.
func decodeEntry(p *Portfolio, line string) error {
	fields := make(map[string]string)
	for _, f := range strings.Split(line, ",") {
		k, v, ok := strings.Cut(f, ":")
		if !ok {
			return fmt.Errorf("invalid field %q in %q", strings.TrimSpace(f), line)
		}
		fields[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	ticker, ok := fields[strings.ToLower(keyTicker)]
	if !ok || ticker == "" {
		return fmt.Errorf("missing %q in %q", keyTicker, line)
	}
	raw, ok := fields[strings.ToLower(keyShares)]
	if !ok {
		return fmt.Errorf("missing %q in %q", keyShares, line)
	}
	shares, err := ParseQuantity(raw)
	if err != nil {
		return fmt.Errorf("invalid shares %q for %s: %w", raw, ticker, err)
	}

	day, isTx := fields[strings.ToLower(keyDate)]
	if !isTx {
		return p.HoldQuantity(ticker, shares)
	}
	on, err := date.Parse(day)
	if err != nil {
		return err
	}
	kind, err := ParseKind(fields[strings.ToLower(keyKind)])
	if err != nil {
		return err
	}
	tx, err := NewTransaction(kind, ticker, shares, on)
	if err != nil {
		return err
	}
	return p.Append(tx)
}
