package folio

import (
	"fmt"

	"github.com/etnz/folio/date"
)

// Sample is the value of a portfolio on a day.
type Sample struct {
	Date  date.Date
	Value float64
}

// Sample values the portfolio at start, then every period until end, included.
//
// Monthly and yearly periods clamp the day to the end of shorter months, and the clamped day is
// carried over to the following samples.
func (v *Valuer) Sample(p *Portfolio, start, end date.Date, period date.Period) ([]Sample, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: unknown sampling period %v", ErrInvalidArgument, period)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: a start and an end date are required", ErrInvalidArgument)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidArgument, start, end)
	}
	if today := v.today(); end.After(today) {
		return nil, fmt.Errorf("%w: cannot sample up to %s, today is %s", ErrFutureDate, end, today)
	}

	var samples []Sample
	for day := start; !day.After(end); day = period.Next(day) {
		value, err := v.Value(p, day)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{Date: day, Value: value})
	}
	return samples, nil
}
