package date

import (
	"math"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, 13, 1), New(2026, time.January, 1); got != want {
		t.Errorf("New(2025, 13, 1) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, 3, 0) = %v, want %v", got, want)
	}
}

func TestStartEndOf(t *testing.T) {
	d := New(2024, time.February, 15)
	testCases := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2024, time.February, 12), New(2024, time.February, 18)},
		{Monthly, New(2024, time.February, 1), New(2024, time.February, 29)},
		{Quarterly, New(2024, time.January, 1), New(2024, time.March, 31)},
		{Yearly, New(2024, time.January, 1), New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.start {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.start)
			}
			if got := d.EndOf(tc.period); got != tc.end {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.end)
			}
		})
	}
}

func TestMonthsSince(t *testing.T) {
	today := New(2025, time.January, 1)
	if got := today.MonthsSince(today); got != 0 {
		t.Errorf("MonthsSince(self) = %v, want 0", got)
	}
	past := today.Add(-61)
	if got := past.MonthsSince(today); got >= 0 {
		t.Errorf("MonthsSince(past) = %v, want negative", got)
	}
	if got := today.Add(3044).MonthsSince(today); math.Abs(got-100) > 1e-9 {
		t.Errorf("MonthsSince(+3044 days) = %v, want 100", got)
	}
}

func TestYearsSince(t *testing.T) {
	birth := New(1998, time.December, 29)
	testCases := []struct {
		on   Date
		want int
	}{
		{New(2023, time.December, 28), 24},
		{New(2023, time.December, 29), 25},
		{New(2024, time.January, 31), 25},
	}
	for _, tc := range testCases {
		if got := tc.on.YearsSince(birth); got != tc.want {
			t.Errorf("%v.YearsSince(%v) = %v, want %v", tc.on, birth, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if want := New(2025, time.July, 1); got != want {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
	if _, err := Parse("01/07/2025"); err == nil {
		t.Errorf("Parse(01/07/2025) expected an error")
	}
}

func TestTextRoundTrip(t *testing.T) {
	var d Date
	if err := d.UnmarshalText([]byte("1998-12-29")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	text, _ := d.MarshalText()
	if string(text) != "1998-12-29" {
		t.Errorf("MarshalText() = %q, want %q", text, "1998-12-29")
	}
}
