package renderer

import (
	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
)

// Summary is the view of the headline figures of the dashboard.
type Summary struct {
	Date          date.Date
	Metrics       finlit.Metrics
	Params        finlit.TrajectoryParams
	Progress      finlit.Progress
	Contributions finlit.Contributions
	Categories    []finlit.CategoryTotal // spending of the current month
}

// ScenarioValue is a scenario and its monthly contribution.
type ScenarioValue struct {
	Scenario finlit.Scenario
	Value    float64
}

// Scenarios returns the contributions in column order.
func (s Summary) Scenarios() []ScenarioValue {
	out := make([]ScenarioValue, 0, len(finlit.Scenarios))
	for _, sc := range finlit.Scenarios {
		out = append(out, ScenarioValue{sc, s.Contributions[sc]})
	}
	return out
}

// SummaryMarkdown renders the summary.
func SummaryMarkdown(s Summary) string {
	partials := map[string]string{
		"summary_metrics":    "summary_metrics.md",
		"summary_progress":   "summary_progress.md",
		"summary_categories": "summary_categories.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// NewSummary computes the summary of a dashboard.
func NewSummary(d *finlit.Dashboard) (Summary, error) {
	m, err := d.Metrics()
	if err != nil {
		return Summary{}, err
	}
	p := d.Config.Trajectory.WithMetrics(m)
	return Summary{
		Date:          d.Today,
		Metrics:       m,
		Params:        p,
		Progress:      finlit.NewProgress(p),
		Contributions: finlit.NewContributions(p),
		Categories:    d.MonthExpenses(),
	}, nil
}
