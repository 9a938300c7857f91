package annuity

import (
	"math"
	"testing"
	"time"

	"github.com/francocalvo/finlit/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValue(t *testing.T) {
	testCases := []struct {
		name                  string
		initial, contribution float64
		rate                  float64
		n                     int
		want                  float64
	}{
		{"zero periods", 1000, 100, 0.01, 0, 1000},
		{"zero rate", 1000, 100, 0, 12, 2200},
		{"growth only", 1000, 0, 0.01, 12, 1126.825030131969},
		{"contributions only", 0, 100, 0.01, 12, 1268.2503013196972},
		// npf.fv(0.0044, 360, -500, -10000)
		{"thirty years", 10000, 500, 0.0044, 360, 486928.1652831917},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FutureValue(tc.initial, tc.contribution, tc.rate, tc.n)
			assert.InEpsilon(t, tc.want, got, 1e-6, "FutureValue()")
		})
	}
}

func TestRequiredContributionRoundTrip(t *testing.T) {
	testCases := []struct {
		initial, rate float64
		n             int
		target        float64
	}{
		{0, 0.0044, 360, 1_714_285.71},
		{25_000, 0.005, 240, 500_000},
		{1_000, 0, 12, 2_200},
	}
	for _, tc := range testCases {
		c := RequiredContribution(tc.initial, tc.rate, tc.n, tc.target)
		require.GreaterOrEqual(t, c, 0.0)
		got := FutureValue(tc.initial, c, tc.rate, tc.n)
		assert.InDelta(t, tc.target, got, 1e-6*tc.target, "FutureValue(RequiredContribution())")
	}
}

func TestRequiredContributionIsMagnitude(t *testing.T) {
	// The initial balance alone overshoots: the signed payment is negative.
	c := RequiredContribution(1_000_000, 0.01, 12, 10)
	assert.Greater(t, c, 0.0)
}

func TestPresentValueForTarget(t *testing.T) {
	pv := PresentValueForTarget(1_000_000, 0.0044, 360)
	assert.InDelta(t, 1_000_000, FutureValue(pv, 0, 0.0044, 360), 1e-6)
	assert.Equal(t, 500.0, PresentValueForTarget(500, 0, 24))
}

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.0044, MonthlyRate(0.0528), 1e-12)
}

func TestMonthlyDates(t *testing.T) {
	dates := MonthlyDates(date.New(2025, time.January, 31), 2)
	require.Len(t, dates, 24)
	for _, d := range dates {
		assert.Equal(t, 1, d.Day(), "dates are anchored on day 1")
	}
	assert.Equal(t, date.New(2025, time.January, 1), dates[0])
	assert.Equal(t, date.New(2025, time.February, 1), dates[1])
	assert.Equal(t, date.New(2026, time.December, 1), dates[23])
}

func TestProject(t *testing.T) {
	points := Project(1000, 100, 0.01, date.New(2025, time.March, 14), 1)
	require.Len(t, points, 12)
	assert.Equal(t, 1000.0, points[0].Value)
	assert.InDelta(t, FutureValue(1000, 100, 0.01, 11), points[11].Value, 1e-9)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Date.After(points[i-1].Date))
	}
}

func TestFutureValueWithoutContributions(t *testing.T) {
	for _, n := range []int{1, 12, 120, 360} {
		for _, rate := range []float64{0.001, 0.0044, 0.01} {
			want := 2500 * math.Pow(1+rate, float64(n))
			assert.InEpsilon(t, want, FutureValue(2500, 0, rate, n), 1e-12, "n=%d rate=%v", n, rate)
		}
	}
}
