package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range [from, to]; it fails if from is after to.
func NewRange(from, to Date) (Range, error) {
	if from.After(to) {
		return Range{}, fmt.Errorf("start date %s is after end date %s", from, to)
	}
	return Range{From: from, To: to}, nil
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
