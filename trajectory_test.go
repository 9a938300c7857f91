package finlit

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/francocalvo/finlit/annuity"
	"github.com/francocalvo/finlit/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() TrajectoryParams {
	p := DefaultTrajectoryParams()
	p.Years = 1
	p.FirstYear, p.FirstMonth = 2024, 1
	p.Income, p.Expenses, p.NetWorth = 3500, 105, 10000
	return p
}

func TestDreamTotal(t *testing.T) {
	p := DefaultTrajectoryParams()
	// 5000 a month at 3.5%.
	assert.InDelta(t, 5000*12/0.035, p.DreamTotal(), 1e-6)
}

func TestNewContributions(t *testing.T) {
	p := testParams()
	c := NewContributions(p)
	assert.InDelta(t, 3395, c[Probable], 1e-9)
	assert.InDelta(t, 2625, c[Possible], 1e-9)
	assert.InDelta(t, 2546.25, c[Conservative], 1e-9)

	rate := annuity.MonthlyRate(p.ReturnRate)
	reached := annuity.FutureValue(p.NetWorth, c[Optimal], rate, p.Years*12)
	assert.InEpsilon(t, p.DreamTotal(), reached, 1e-9, "optimal contribution reaches the dream total")
}

func TestTrajectoryParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultTrajectoryParams().Validate())
	for name, mutate := range map[string]func(*TrajectoryParams){
		"years":           func(p *TrajectoryParams) { p.Years = 0 },
		"swr":             func(p *TrajectoryParams) { p.SWR = 0 },
		"trailing months": func(p *TrajectoryParams) { p.TrailingMonths = -1 },
		"first month":     func(p *TrajectoryParams) { p.FirstMonth = 13 },
	} {
		p := DefaultTrajectoryParams()
		mutate(&p)
		assert.Error(t, p.Validate(), name)
	}
}

func TestBuildProjection(t *testing.T) {
	p := testParams()
	historical := ValuationSeries{
		{Date: day("2024-01-01"), NetWorth: dec(0)},
		{Date: day("2024-02-01"), NetWorth: dec(2912)},
		{Date: day("2024-03-01"), NetWorth: dec(6892)},
	}
	table := BuildProjection(p, historical, day("2024-03-15"))

	assert.Equal(t, day("2024-03-01"), table.Start)
	// Two historical months then twelve projected ones.
	require.Len(t, table.Rows, 14)
	for _, row := range table.Rows {
		assert.Len(t, row.Values, len(Scenarios), "row %s", row.Date)
	}
	for i := 1; i < len(table.Rows); i++ {
		assert.True(t, table.Rows[i-1].Date.Before(table.Rows[i].Date), "rows are sorted")
	}

	// History carries the same value in every scenario.
	for _, s := range Scenarios {
		assert.Equal(t, 2912.0, table.Rows[1].Value(s), "%s on 2024-02-01", s)
	}
	// The projection starts at the current net worth, not the historical point
	// of the same date.
	march := table.Rows[2]
	assert.Equal(t, day("2024-03-01"), march.Date)
	for _, s := range Scenarios {
		assert.Equal(t, p.NetWorth, march.Value(s), "%s on 2024-03-01", s)
	}

	rate := annuity.MonthlyRate(p.ReturnRate)
	april := table.Rows[3]
	assert.InDelta(t, p.NetWorth*(1+rate)+table.Contributions[Probable], april.Value(Probable), 1e-6)
	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, day("2025-02-01"), last.Date)
	assert.Greater(t, last.Value(Possible), last.Value(Conservative))
}

func TestBuildProjectionWithoutHistory(t *testing.T) {
	table := BuildProjection(testParams(), nil, day("2024-03-15"))
	require.Len(t, table.Rows, 12)
	assert.Equal(t, day("2024-03-01"), table.Rows[0].Date)
}

func TestDedupe(t *testing.T) {
	got := dedupe([]annuity.Point{
		{Date: day("2024-03-01"), Value: 1},
		{Date: day("2024-01-01"), Value: 2},
		{Date: day("2024-03-01"), Value: 3},
	})
	want := []annuity.Point{
		{Date: day("2024-01-01"), Value: 2},
		{Date: day("2024-03-01"), Value: 1},
	}
	assert.Equal(t, want, got)
}

func TestJoinScenarios(t *testing.T) {
	jan, feb := day("2024-01-01"), day("2024-02-01")
	series := make(map[Scenario][]annuity.Point)
	for _, s := range Scenarios {
		series[s] = []annuity.Point{{Date: jan, Value: 1}, {Date: feb, Value: 2}}
	}
	series[Optimal] = series[Optimal][:1]

	buf := captureLog(t)
	rows := joinScenarios(series)
	require.Len(t, rows, 1)
	assert.Equal(t, jan, rows[0].Date)
	assert.Contains(t, buf.String(), "dropping 2024-02-01")
}

func TestJoinScenariosMisaligned(t *testing.T) {
	series := make(map[Scenario][]annuity.Point)
	for i, s := range Scenarios {
		series[s] = []annuity.Point{{Date: day("2024-01-01").AddMonth(i), Value: 1}}
	}
	captureLog(t)
	assert.Panics(t, func() { joinScenarios(series) })
}

func TestCoastNumber(t *testing.T) {
	p := testParams()
	rate := annuity.MonthlyRate(p.ReturnRate)
	coast := CoastNumber(p)
	assert.InEpsilon(t, p.DreamTotal(), coast*math.Pow(1+rate, 12), 1e-9)
}

func TestBuildCoastFire(t *testing.T) {
	p := testParams()
	p.BirthDate = day("1990-06-15")
	today := day("2024-03-15")
	points := BuildCoastFire(p, today)

	// Two elapsed months plus twelve ahead.
	require.Len(t, points, 14)
	assert.Equal(t, day("2024-01-31"), points[0].Date)
	assert.Equal(t, day("2025-02-28"), points[13].Date)
	assert.Equal(t, 33, points[0].Age)
	assert.Equal(t, 34, points[13].Age)

	coast := CoastNumber(p)
	rate := annuity.MonthlyRate(p.ReturnRate)
	march := points[2]
	assert.Equal(t, day("2024-03-31"), march.Date)
	assert.InDelta(t, coast*math.Pow(1+rate, 16/date.DaysPerMonth), march.Value, 1e-6)
	// Past month ends are discounted.
	assert.Less(t, points[0].Value, coast)
	assert.Greater(t, points[13].Value, coast)
}

func TestBuildCoastFireWithoutBirthDate(t *testing.T) {
	for _, pt := range BuildCoastFire(testParams(), day("2024-03-15")) {
		assert.Zero(t, pt.Age)
	}
}

func TestNewProgress(t *testing.T) {
	p := testParams()
	p.NetWorth = p.DreamTotal() / 2
	pr := NewProgress(p)
	assert.InDelta(t, 50, pr.FIRE, 1e-9)
	assert.Greater(t, pr.Coast, pr.FIRE)
}

func TestProjectionRowJSON(t *testing.T) {
	r := ProjectionRow{Date: day("2024-05-01"), Values: map[Scenario]float64{
		Conservative: 1, Probable: 2, Optimal: 3, Possible: 4.5,
	}}
	got, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-01","conservative_value":1,"probable_value":2,"optimal_value":3,"possible_value":4.5}`, string(got))
}
