package date

import "time"

// Calendar tells whether a day is a trading day.
type Calendar interface {
	IsBusinessDay(Date) bool
}

// Weekdays is the calendar where every day from Monday to Friday is a trading day.
var Weekdays Calendar = weekdays{}

type weekdays struct{}

func (weekdays) IsBusinessDay(d Date) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Holidays is a weekday calendar with a table of closed days.
type Holidays struct {
	closed map[Date]struct{}
}

// NewHolidays returns a calendar closed on weekends and on every given day.
func NewHolidays(days ...Date) *Holidays {
	h := &Holidays{closed: make(map[Date]struct{}, len(days))}
	for _, d := range days {
		h.closed[d] = struct{}{}
	}
	return h
}

// IsBusinessDay implements Calendar.
func (h *Holidays) IsBusinessDay(d Date) bool {
	if _, closed := h.closed[d]; closed {
		return false
	}
	return Weekdays.IsBusinessDay(d)
}

// Len returns the number of holidays in the table.
func (h *Holidays) Len() int { return len(h.closed) }
