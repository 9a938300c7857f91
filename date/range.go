package date

import "fmt"

// Range is a closed interval of dates.
type Range struct{ From, To Date }

// NewRange returns the period of kind p that contains d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether d is within the range, boundaries included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Period returns the calendar period matching the range exactly, if any.
func (r Range) Period() (Period, bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if r.From.StartOf(p) == r.From && r.From.EndOf(p) == r.To {
			return p, true
		}
	}
	return Daily, false
}

// Identifier names the range compactly: 2025-03 for a month, 2025-Q1 for a
// quarter, the two bounds otherwise.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Weekly:
		y, w := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.From.String()
	}
}

// Split cuts the range into consecutive periods of kind p, the first and
// last possibly partial.
func (r Range) Split(p Period) []Range {
	var out []Range
	for on := range p.Samples(r.From, r.To) {
		end := on.EndOf(p)
		if end.After(r.To) {
			end = r.To
		}
		out = append(out, Range{From: on, To: end})
	}
	return out
}
