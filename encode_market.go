package folio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/folio/date"
)

// priceHeader is the header of daily price files, as served by AlphaVantage.
var priceHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

const closeColumn = 4

// DecodePriceSeries reads a daily price CSV file into a series for ticker.
//
// The first line is a header, following lines have at least five columns: the day and the open,
// high, low and close prices. Only the day and the close are used.
func DecodePriceSeries(ticker string, r io.Reader) (*PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	s := NewPriceSeries(ticker)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid price file for %s: %w", ticker, err)
		}
		if line == 1 {
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), priceHeader[0]) {
				continue
			}
			return nil, fmt.Errorf("invalid price file for %s: missing header, got %q", ticker, strings.Join(record, ","))
		}
		if len(record) <= closeColumn {
			return nil, fmt.Errorf("invalid price file for %s line %d: want at least %d columns, got %d", ticker, line, closeColumn+1, len(record))
		}
		on, err := date.Parse(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid price file for %s line %d: %w", ticker, line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[closeColumn]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price file for %s line %d: invalid close %q: %w", ticker, line, record[closeColumn], err)
		}
		if err := s.Append(on, price); err != nil {
			return nil, fmt.Errorf("invalid price file for %s line %d: %w", ticker, line, err)
		}
	}
	return s, nil
}

// EncodePriceSeries writes the series as a daily price CSV file, most recent day first.
//
// Only the close column is known, open, high and low repeat it and volume is 0.
func EncodePriceSeries(w io.Writer, s *PriceSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(priceHeader); err != nil {
		return err
	}
	for i := s.prices.Len() - 1; i >= 0; i-- {
		on, p := s.prices.At(i)
		price := strconv.FormatFloat(p, 'f', -1, 64)
		if err := cw.Write([]string{on.String(), price, price, price, price, "0"}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
