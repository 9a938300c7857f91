package finlit

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"github.com/francocalvo/finlit/annuity"
	"github.com/francocalvo/finlit/date"
)

// TrajectoryParams are the inputs of the net worth projections.
type TrajectoryParams struct {
	TrailingMonths int       `yaml:"trailing_months" json:"trailing_months"`
	ReturnRate     float64   `yaml:"return_rate" json:"return_rate"` // annual, 0.05 is 5%
	Years          int       `yaml:"years" json:"years"`
	SWR            float64   `yaml:"swr" json:"swr"`             // safe withdrawal rate, in percent
	Dream          float64   `yaml:"dream" json:"dream"`         // monthly spending in retirement
	SaveRate       float64   `yaml:"save_rate" json:"save_rate"` // share of income saved, in percent
	FirstYear      int       `yaml:"first_year" json:"first_year"`
	FirstMonth     int       `yaml:"first_month" json:"first_month"`
	BirthDate      date.Date `yaml:"birth_date" json:"birth_date"`

	// Supplied by the caller, usually from TrailingMetrics.
	Income   float64 `yaml:"-" json:"income"`
	Expenses float64 `yaml:"-" json:"expenses"`
	NetWorth float64 `yaml:"-" json:"net_worth"`
}

// DefaultTrajectoryParams returns the parameters used when none are configured.
func DefaultTrajectoryParams() TrajectoryParams {
	return TrajectoryParams{
		TrailingMonths: 6,
		ReturnRate:     0.0528,
		Years:          30,
		SWR:            3.5,
		Dream:          5000,
		SaveRate:       75,
		FirstYear:      2023,
		FirstMonth:     1,
	}
}

// DreamTotal is the net worth that sustains Dream monthly at the safe
// withdrawal rate.
func (p TrajectoryParams) DreamTotal() float64 { return p.Dream * 12 / (p.SWR / 100) }

// FirstDate is the first day of the first month with data.
func (p TrajectoryParams) FirstDate() date.Date {
	return date.New(p.FirstYear, time.Month(p.FirstMonth), 1)
}

// WithMetrics returns a copy of p with the caller-supplied scalars taken from m.
func (p TrajectoryParams) WithMetrics(m Metrics) TrajectoryParams {
	p.Income = m.Income.InexactFloat64()
	p.Expenses = m.Expenses.InexactFloat64()
	p.NetWorth = m.NetWorth.InexactFloat64()
	return p
}

// Validate checks the parameters the projections divide by or iterate on.
func (p TrajectoryParams) Validate() error {
	switch {
	case p.Years <= 0:
		return fmt.Errorf("years must be positive, got %d", p.Years)
	case p.SWR <= 0:
		return fmt.Errorf("safe withdrawal rate must be positive, got %v", p.SWR)
	case p.TrailingMonths <= 0:
		return fmt.Errorf("trailing months must be positive, got %d", p.TrailingMonths)
	case p.FirstMonth < 1 || p.FirstMonth > 12:
		return fmt.Errorf("first month must be within 1..12, got %d", p.FirstMonth)
	}
	return nil
}

// Scenario names a contribution scenario.
type Scenario string

const (
	Conservative Scenario = "conservative_value"
	Probable     Scenario = "probable_value"
	Optimal      Scenario = "optimal_value"
	Possible     Scenario = "possible_value"
)

// Scenarios lists the scenarios in column order.
var Scenarios = []Scenario{Conservative, Probable, Optimal, Possible}

// Contributions are the monthly contributions of each scenario.
type Contributions map[Scenario]float64

// NewContributions derives the four scenarios:
//   - probable: what is saved today, income minus expenses
//   - possible: SaveRate percent of income
//   - conservative: three quarters of probable
//   - optimal: what reaches DreamTotal in Years
func NewContributions(p TrajectoryParams) Contributions {
	probable := p.Income - p.Expenses
	return Contributions{
		Probable:     probable,
		Possible:     p.Income * p.SaveRate / 100,
		Conservative: probable * 0.75,
		Optimal:      annuity.RequiredContribution(p.NetWorth, annuity.MonthlyRate(p.ReturnRate), p.Years*12, p.DreamTotal()),
	}
}

// ProjectionRow is one date of the merged projection table.
type ProjectionRow struct {
	Date   date.Date
	Values map[Scenario]float64
}

// Value returns the value of a scenario.
func (r ProjectionRow) Value(s Scenario) float64 { return r.Values[s] }

// MarshalJSON writes the row flat, one field per scenario, like the csv
// columns.
func (r ProjectionRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date         date.Date `json:"date"`
		Conservative float64   `json:"conservative_value"`
		Probable     float64   `json:"probable_value"`
		Optimal      float64   `json:"optimal_value"`
		Possible     float64   `json:"possible_value"`
	}{r.Date, r.Value(Conservative), r.Value(Probable), r.Value(Optimal), r.Value(Possible)})
}

// ProjectionTable is the historical net worth followed by the projected one,
// one row per date, all four scenarios present on every row.
type ProjectionTable struct {
	Start         date.Date // first projected date
	Contributions Contributions
	Rows          []ProjectionRow
}

// BuildProjection projects NetWorth forward from the first day of today's
// month under each scenario and prepends the historical net worth.
//
// Each scenario series is the projection followed by the historical points
// dated before the projection start; a date present twice keeps its first
// value. The four series are then joined on date.
func BuildProjection(p TrajectoryParams, historical ValuationSeries, today date.Date) ProjectionTable {
	start := today.StartOf(date.Monthly)
	rate := annuity.MonthlyRate(p.ReturnRate)
	contributions := NewContributions(p)
	for _, s := range Scenarios {
		debugf("%s contribution: %.2f", s, contributions[s])
	}

	past := historical.Before(start)
	series := make(map[Scenario][]annuity.Point, len(Scenarios))
	for _, s := range Scenarios {
		points := annuity.Project(p.NetWorth, contributions[s], rate, start, p.Years)
		for _, h := range past {
			points = append(points, annuity.Point{Date: h.Date, Value: h.NetWorth.InexactFloat64()})
		}
		series[s] = dedupe(points)
	}
	return ProjectionTable{
		Start:         start,
		Contributions: contributions,
		Rows:          joinScenarios(series),
	}
}

// dedupe keeps the first point of each date and sorts by date.
func dedupe(points []annuity.Point) []annuity.Point {
	seen := make(map[date.Date]bool, len(points))
	out := make([]annuity.Point, 0, len(points))
	for _, pt := range points {
		if seen[pt.Date] {
			continue
		}
		seen[pt.Date] = true
		out = append(out, pt)
	}
	slices.SortFunc(out, func(a, b annuity.Point) int { return a.Date.Compare(b.Date) })
	return out
}

// joinScenarios keeps the dates present in every scenario. Series built from
// the same dates always align; finding no common date at all means they were
// built inconsistently, which is a bug.
func joinScenarios(series map[Scenario][]annuity.Point) []ProjectionRow {
	values := make(map[date.Date]map[Scenario]float64)
	var order []date.Date
	for _, s := range Scenarios {
		for _, pt := range series[s] {
			v, ok := values[pt.Date]
			if !ok {
				v = make(map[Scenario]float64, len(Scenarios))
				values[pt.Date] = v
				order = append(order, pt.Date)
			}
			v[s] = pt.Value
		}
	}
	slices.SortFunc(order, date.Date.Compare)

	rows := make([]ProjectionRow, 0, len(order))
	for _, on := range order {
		v := values[on]
		if len(v) != len(Scenarios) {
			log.Printf("projection: dropping %s, present in %d of %d scenarios", on, len(v), len(Scenarios))
			continue
		}
		rows = append(rows, ProjectionRow{Date: on, Values: v})
	}
	if len(rows) == 0 && len(order) > 0 {
		panic(fmt.Sprintf("projection scenarios share no date out of %d", len(order)))
	}
	return rows
}

// CoastFirePoint is the Coast FIRE number as of a date.
type CoastFirePoint struct {
	Date  date.Date `json:"date"`
	Age   int       `json:"age"`
	Value float64   `json:"coast_value"`
}

// CoastNumber is the amount that, invested today and left alone, grows into
// DreamTotal in Years.
func CoastNumber(p TrajectoryParams) float64 {
	return annuity.PresentValueForTarget(p.DreamTotal(), annuity.MonthlyRate(p.ReturnRate), p.Years*12)
}

// BuildCoastFire returns the Coast FIRE curve at every month end from the
// first month with data to Years after today. The value at a date is the
// coast number grown, or discounted for past dates, by the months between
// today and that date.
func BuildCoastFire(p TrajectoryParams, today date.Date) []CoastFirePoint {
	coast := CoastNumber(p)
	rate := annuity.MonthlyRate(p.ReturnRate)
	first := p.FirstDate()
	elapsed := (today.Year()-first.Year())*12 + int(today.Month()-first.Month())
	months := p.Years*12 + elapsed

	points := make([]CoastFirePoint, 0, max(months, 0))
	for i := range months {
		on := first.AddMonth(i).EndOf(date.Monthly)
		pt := CoastFirePoint{
			Date:  on,
			Value: coast * math.Pow(1+rate, on.MonthsSince(today)),
		}
		if !p.BirthDate.IsZero() {
			pt.Age = on.YearsSince(p.BirthDate)
		}
		points = append(points, pt)
	}
	return points
}

// Progress measures how far NetWorth is from the FIRE goals, in percent.
type Progress struct {
	DreamTotal  float64
	CoastNumber float64
	FIRE        float64 // NetWorth over DreamTotal
	Coast       float64 // NetWorth over CoastNumber
}

// NewProgress computes the FIRE and Coast FIRE progress of p.
func NewProgress(p TrajectoryParams) Progress {
	pr := Progress{DreamTotal: p.DreamTotal(), CoastNumber: CoastNumber(p)}
	if pr.DreamTotal > 0 {
		pr.FIRE = p.NetWorth / pr.DreamTotal * 100
	}
	if pr.CoastNumber > 0 {
		pr.Coast = p.NetWorth / pr.CoastNumber * 100
	}
	return pr
}
