package date

import (
	"fmt"
	"iter"
	"strings"
)

// Period is a calendar sampling step.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// periodNames holds the adjective and the noun of each period.
var periodNames = [...][2]string{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

func (p Period) valid() bool { return p >= Daily && p <= Yearly }

func (p Period) String() string {
	if !p.valid() {
		panic(fmt.Sprintf("unknown period %d", p))
	}
	return periodNames[p][0]
}

// ParsePeriod accepts both the adjective and the noun ("monthly", "month").
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, names := range periodNames {
		if s == names[0] || s == names[1] {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q", s)
}

// Next returns the start of the period following the one containing d.
func (p Period) Next(d Date) Date {
	start := d.StartOf(p)
	switch p {
	case Daily:
		return d.Add(1)
	case Weekly:
		return start.Add(7)
	case Monthly:
		return start.AddMonth(1)
	case Quarterly:
		return start.AddMonth(3)
	default:
		return start.AddMonth(12)
	}
}

// Samples yields sample dates from 'from' to 'to', both included: 'from' itself
// first, then the start of every following period. Nothing is yielded when
// 'to' is before 'from'.
func (p Period) Samples(from, to Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := from; !on.After(to); on = p.Next(on) {
			if !yield(on) {
				return
			}
		}
	}
}
