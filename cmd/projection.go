package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

type projectionCmd struct {
	format string
}

func (*projectionCmd) Name() string { return "projection" }
func (*projectionCmd) Synopsis() string {
	return "project the net worth under four contribution scenarios"
}
func (*projectionCmd) Usage() string {
	return `finlit projection [-format md|csv|json]

  Projects the net worth month by month, from the first day of the current
  month and for the configured number of years, under four monthly
  contributions:

    conservative  three quarters of the probable contribution
    probable      average income minus average expenses
    optimal       the contribution reaching the retirement goal in time
    possible      the configured share of the average income

  Months before the current one show the actual net worth. The markdown
  output keeps one row per year, csv and json keep every month.
  See 'finlit topic fire'.
`
}

func (c *projectionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format (md, csv, json).")
}

func (c *projectionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	t, err := d.Projection()
	if err != nil {
		return fail("Error computing projection: %v", err)
	}
	return output(c.format,
		func() string { return renderer.ProjectionMarkdown(t, d.Config.Currency) },
		func(w io.Writer) error { return renderer.WriteProjectionCSV(w, t) },
		t)
}

type coastCmd struct {
	format string
}

func (*coastCmd) Name() string     { return "coast" }
func (*coastCmd) Synopsis() string { return "display the Coast FIRE number and its curve" }
func (*coastCmd) Usage() string {
	return `finlit coast [-format md|csv|json]

  The Coast FIRE number is the amount that, invested today without further
  contributions, grows into the retirement goal by the end of the projection.
  The curve shows that amount at every month end, grown or discounted by the
  expected return.
`
}

func (c *coastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format (md, csv, json).")
}

func (c *coastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	points, p, err := d.CoastFire()
	if err != nil {
		return fail("Error computing Coast FIRE: %v", err)
	}
	return output(c.format,
		func() string { return renderer.CoastMarkdown(points, finlit.CoastNumber(p), d.Config.Currency, d.Today) },
		func(w io.Writer) error { return renderer.WriteCoastCSV(w, points) },
		points)
}
