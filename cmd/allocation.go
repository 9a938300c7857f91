package cmd

import (
	"context"
	"flag"

	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct {
	date   string
	format string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the investment holdings and their weights" }
func (*allocationCmd) Usage() string {
	return `finlit allocation [-d <date>] [-format md|json]

  Values every commodity held under the configured investment prefix at the
  end of the day and weights it in the portfolio. Holdings are also totaled
  per asset class, as declared by the commodity entries of the ledger.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day of the allocation. Defaults to today.")
	f.StringVar(&c.format, "format", "md", "Output format (md, json).")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	a, err := d.Allocation(on)
	if err != nil {
		return fail("Error computing allocation: %v", err)
	}
	return output(c.format, func() string { return renderer.AllocationMarkdown(a) }, nil, a)
}
