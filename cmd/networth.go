package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/francocalvo/finlit/date"
	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

type networthCmd struct {
	period   string
	start    string
	end      string
	currency string
	prefix   string
	format   string
}

func (*networthCmd) Name() string { return "networth" }
func (*networthCmd) Synopsis() string {
	return "display the net worth, assets and liabilities over time"
}
func (*networthCmd) Usage() string {
	return `finlit networth [-p <period>] [-s <start_date>] [-d <end_date>] [-c <currency>] [-prefix <account>] [-format md|csv|json]

  Values the balance sheet at every sample date between the start and the end
  date. A sample dated D includes every transaction dated strictly before D.
  Amounts whose currency cannot be converted on a date are left out of that
  date only.

Usage Examples:
# Monthly net worth since the first transaction.
$ finlit networth

# Daily value of the investments in 2024, as csv.
$ finlit networth -p day -s 2024-01-01 -d 2024-12-31 -prefix Assets:Inversiones -format csv
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Sampling period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "First sample date. Defaults to the configured first year and month.")
	f.StringVar(&c.end, "d", "", "Last sample date. Defaults to today.")
	f.StringVar(&c.currency, "c", "", "Reporting currency. Defaults to the configured one.")
	f.StringVar(&c.prefix, "prefix", "", "Restrict to the accounts under this prefix.")
	f.StringVar(&c.format, "format", "md", "Output format (md, csv, json).")
}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		return usage("Error parsing period: %v", err)
	}
	start, err := parseDate(c.start)
	if err != nil {
		return usage("Error parsing start date: %v", err)
	}
	end, err := parseDate(c.end)
	if err != nil {
		return usage("Error parsing end date: %v", err)
	}

	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	if c.currency != "" {
		d.Config.Currency = c.currency
	}

	s, err := d.History(start, end, period, c.prefix)
	if err != nil {
		return fail("Error computing net worth: %v", err)
	}
	return output(c.format,
		func() string { return renderer.NetWorthMarkdown(s, d.Config.Currency, c.prefix) },
		func(w io.Writer) error { return renderer.WriteValuationCSV(w, s) },
		s)
}
