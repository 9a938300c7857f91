// Package date provides a day-granularity Date type, calendar periods, ranges
// and dated histories used by the valuation and projection engines.
package date

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const readDateFormat = "2006-1-2" // lenient: accepts 2025-7-1

// DateFormat is the ISO-8601 format used to write dates.
const DateFormat = "2006-01-02"

// DaysPerMonth is the average month length used for fractional month counts.
const DaysPerMonth = 30.44

// Date is a calendar day with no time of day and no location.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so that New(2025, 13, 1) is 2026-01-01.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

// time returns the canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year.
func (d Date) Year() int { return d.y }

// Month returns the month.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmp(d.y, x.y)
	case d.m != x.m:
		return cmp(int(d.m), int(x.m))
	default:
		return cmp(d.d, x.d)
	}
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Add returns d shifted by i days.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonth returns d shifted by i months. The day is normalized, so Jan 31 + 1
// month is Mar 3 (or Mar 2 on leap years); anchor on day 1 when that matters.
func (d Date) AddMonth(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		offset := int(d.Weekday()+6) % 7 // Monday is the first day
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		return d.StartOf(Quarterly).AddMonth(3).Add(-1)
	case Yearly:
		return New(d.y, time.December, 31)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// DaysSince returns the signed number of days from x to d.
func (d Date) DaysSince(x Date) int {
	return int(math.Round(d.time().Sub(x.time()).Hours() / 24))
}

// MonthsSince returns the signed, fractional number of average-length months
// from x to d. It is negative when d is before x.
func (d Date) MonthsSince(x Date) float64 {
	return float64(d.DaysSince(x)) / DaysPerMonth
}

// YearsSince returns the number of whole years elapsed from x to d, as an age.
func (d Date) YearsSince(x Date) int {
	years := d.y - x.y
	if d.m < x.m || (d.m == x.m && d.d < x.d) {
		years--
	}
	return years
}

// Format formats the date with a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// String returns the date in ISO-8601 format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Parse parses a date, leniently accepting single-digit months and days.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(str))
}

// MarshalJSON writes the date as a json string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalText makes Date usable in configuration files.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	on, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = on
	return nil
}

// MarshalText writes the date in ISO-8601 format, the zero date as empty.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, nil
	}
	return []byte(d.String()), nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
