package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// search returns the position of day in h, and whether it is present.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := h.search(on)
	if found {
		// Found a point at that exact same day, the last data wins.
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it, with its date.
// It returns false if there is no value on or before day.
func (h *History[T]) ValueAsOf(day Date) (Date, T, bool) {
	i := h.Upto(day)
	if i == 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[i-1], h.values[i-1], true
}

// Upto returns the number of days in the history that are on or before day.
//
// Values at positions [0, Upto(day)) are exactly the ones dated on or before day.
func (h *History[T]) Upto(day Date) int {
	i, found := h.search(day)
	if found {
		i++
	}
	return i
}

// Index returns the position of day in the history, and whether it is present.
func (h *History[T]) Index(day Date) (int, bool) { return h.search(day) }

// At returns the i-th point of the history in chronological order.
func (h *History[T]) At(i int) (Date, T) { return h.days[i], h.values[i] }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Days returns an iterator over the dates of the history, in chronological order.
func (h *History[T]) Days() iter.Seq[Date] { return slices.Values(h.days) }
