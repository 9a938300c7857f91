// Package annuity implements the compound-interest formulas used to project
// net worth forward: future value of an ordinary annuity, the contribution
// needed to reach a target, and the present value of a target.
//
// All rates are periodic (monthly) rates and all periods are months.
package annuity

import (
	"math"

	"github.com/francocalvo/finlit/date"
)

// MonthlyRate converts an annual nominal rate to the monthly rate used by the
// projections. It is a plain division by twelve, not geometric compounding.
func MonthlyRate(annual float64) float64 { return annual / 12 }

// FutureValue returns the value after n periods of an initial balance growing
// at rate, with a contribution added at the end of every period.
//
// It equals npf.fv(rate, n, -contribution, -initial).
func FutureValue(initial, contribution, rate float64, n int) float64 {
	if rate == 0 {
		return initial + contribution*float64(n)
	}
	growth := math.Pow(1+rate, float64(n))
	return initial*growth + contribution*(growth-1)/rate
}

// RequiredContribution returns the end-of-period contribution that takes
// initial to target in n periods at rate.
//
// It equals |npf.pmt(rate, n, initial, -target)|. The magnitude is returned,
// so when initial alone already outgrows target the result is the withdrawal
// that would land exactly on it.
func RequiredContribution(initial, rate float64, n int, target float64) float64 {
	if n <= 0 {
		return 0
	}
	if rate == 0 {
		return math.Abs((target - initial) / float64(n))
	}
	growth := math.Pow(1+rate, float64(n))
	return math.Abs((target - initial*growth) * rate / (growth - 1))
}

// PresentValueForTarget returns the amount that grows into target after n
// periods at rate with no contributions.
func PresentValueForTarget(target, rate float64, n int) float64 {
	return target / math.Pow(1+rate, float64(n))
}

// MonthlyDates returns years*12 consecutive month starts, the first one being
// the month containing start.
func MonthlyDates(start date.Date, years int) []date.Date {
	first := start.StartOf(date.Monthly)
	dates := make([]date.Date, years*12)
	for i := range dates {
		dates[i] = first.AddMonth(i)
	}
	return dates
}

// Point is a projected value at a date.
type Point struct {
	Date  date.Date
	Value float64
}

// Project returns the value curve of initial growing at rate with a constant
// contribution. Point k is FutureValue after k periods, so the first point is
// the initial balance itself.
func Project(initial, contribution, rate float64, start date.Date, years int) []Point {
	dates := MonthlyDates(start, years)
	points := make([]Point, len(dates))
	for k, on := range dates {
		points[k] = Point{Date: on, Value: FutureValue(initial, contribution, rate, k)}
	}
	return points
}
