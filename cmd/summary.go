package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	format string
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display the headline figures: income, expenses, savings rate and FIRE progress"
}
func (*summaryCmd) Usage() string {
	return `finlit summary [-format md|json]

  Averages income and expenses over the trailing months, values the net
  worth at the start of the month, and reports the progress toward the
  retirement goal and the spending of the current month.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format (md, json).")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	s, err := renderer.NewSummary(d)
	if err != nil {
		return fail("Error computing summary: %v", err)
	}
	return output(c.format, func() string { return renderer.SummaryMarkdown(s) }, nil, s)
}

type ratiosCmd struct {
	format string
}

func (*ratiosCmd) Name() string     { return "ratios" }
func (*ratiosCmd) Synopsis() string { return "display the monthly gross and net expense ratios" }
func (*ratiosCmd) Usage() string {
	return `finlit ratios [-format md|csv|json]

  For every month with income, the share of income spent. The gross ratio
  compares all expenses to all income. The net ratio only counts the income
  of the configured origins and leaves out the configured expense
  subcategories.
`
}

func (c *ratiosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format (md, csv, json).")
}

func (c *ratiosCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	points := d.Ratios()
	return output(c.format,
		func() string { return renderer.RatiosMarkdown(points, d.Config.Currency) },
		func(w io.Writer) error { return renderer.WriteRatiosCSV(w, points) },
		points)
}
