package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, one per date.
// Dates are unique and kept sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of points.
func (h *History[T]) Len() int { return len(h.days) }

// Append sets the value at 'on', replacing any existing value for that day.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Latest returns the last point, or zero values when empty.
func (h *History[T]) Latest() (Date, T) {
	if len(h.days) == 0 {
		var zero T
		return Date{}, zero
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// Get returns the value recorded exactly at 'day'.
func (h *History[T]) Get(day Date) (T, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if !found {
		var zero T
		return zero, false
	}
	return h.values[i], true
}

// ValueAsOf returns the value on 'day' or the most recent one before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	_, v, ok := h.PointAsOf(day)
	return v, ok
}

// PointAsOf is like ValueAsOf but also returns the date of the value found.
func (h *History[T]) PointAsOf(day Date) (Date, T, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.days[i], h.values[i], true
	}
	if i == 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[i-1], h.values[i-1], true
}

// Values iterates over the points in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Days returns a copy of the dates of the history.
func (h *History[T]) Days() []Date { return slices.Clone(h.days) }
