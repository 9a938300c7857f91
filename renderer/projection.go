package renderer

import (
	"time"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
)

// Projection is the view of a projection table. Only the first row of each
// year, the first projected row and the last row are kept; the CSV output has
// them all.
type Projection struct {
	Currency      string
	Start         date.Date
	Scenarios     []finlit.Scenario
	Contributions []float64 // in Scenarios order
	Rows          []ProjectionRow
}

// ProjectionRow holds the values of a date in Scenarios order.
type ProjectionRow struct {
	Date      date.Date
	Projected bool
	Values    []float64
}

// NewProjection builds the view of t.
func NewProjection(t finlit.ProjectionTable, currency string) Projection {
	v := Projection{Currency: currency, Start: t.Start, Scenarios: finlit.Scenarios}
	for _, s := range finlit.Scenarios {
		v.Contributions = append(v.Contributions, t.Contributions[s])
	}
	for i, r := range t.Rows {
		if r.Date.Month() != time.January && r.Date != t.Start && i != len(t.Rows)-1 {
			continue
		}
		row := ProjectionRow{Date: r.Date, Projected: !r.Date.Before(t.Start)}
		for _, s := range finlit.Scenarios {
			row.Values = append(row.Values, r.Value(s))
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// ProjectionMarkdown renders a projection table.
func ProjectionMarkdown(t finlit.ProjectionTable, currency string) string {
	partials := map[string]string{
		"projection_contributions": "projection_contributions.md",
		"projection_table":         "projection_table.md",
	}
	return renderTemplate("projection", "projection.md", partials, NewProjection(t, currency))
}
