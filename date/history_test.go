package date

import (
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, d2 := New(2025, time.July, 1), New(2024, time.July, 1)

	h.Append(d1, "later")
	h.Append(d2, "earlier")
	if h.Len() != 2 {
		t.Fatalf("Len() = %v, want 2", h.Len())
	}
	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("days = %v, want chronological order", h.days)
	}
	h.Append(d1, "replaced")
	if v, _ := h.Get(d1); h.Len() != 2 || v != "replaced" {
		t.Errorf("Append(existing) = %q (len %d), want replaced value", v, h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, time.January, 10), 1.5)
	h.Append(New(2025, time.February, 10), 2.5)

	testCases := []struct {
		on    Date
		want  float64
		found bool
	}{
		{New(2025, time.January, 9), 0, false},
		{New(2025, time.January, 10), 1.5, true},
		{New(2025, time.February, 9), 1.5, true},
		{New(2025, time.March, 1), 2.5, true},
	}
	for _, tc := range testCases {
		got, found := h.ValueAsOf(tc.on)
		if got != tc.want || found != tc.found {
			t.Errorf("ValueAsOf(%v) = %v, %v, want %v, %v", tc.on, got, found, tc.want, tc.found)
		}
	}
	if on, _, _ := h.PointAsOf(New(2025, time.March, 1)); on != New(2025, time.February, 10) {
		t.Errorf("PointAsOf() date = %v, want 2025-02-10", on)
	}
}
