package date

import (
	"fmt"
	"strings"
)

// Period is a sampling cadence.
type Period int

const (
	Daily Period = iota
	Monthly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool { return p == Daily || p == Monthly || p == Yearly }

// Next returns d advanced by one unit of p.
//
// Monthly and yearly steps keep the day of the month where the calendar allows, see
// [Date.AddMonths]. Next panics on an invalid period.
func (p Period) Next(d Date) Date {
	switch p {
	case Daily:
		return d.Add(1)
	case Monthly:
		return d.AddMonths(1)
	case Yearly:
		return d.AddYears(1)
	default:
		panic("unknown period")
	}
}

// ParsePeriod parses "daily", "monthly" or "yearly" (or "day", "month", "year"), case insensitive.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q want daily, monthly or yearly", p)
	}
}
