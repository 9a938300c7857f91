package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

type queryCmd struct {
	format string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "sum the postings matching an aggregate query" }
func (*queryCmd) Usage() string {
	return `finlit query [-format md|json] <query>

  Sums the postings matching the query, per currency. See 'finlit topic query'.

Usage Examples:
$ finlit query "SELECT SUM(CONVERT(POSITION, 'USD', DATE)) WHERE account ~ '^Expenses' AND date >= DATE('2024-01-01')"
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format (md, json).")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("Missing query, see 'finlit topic query'")
	}
	s := strings.Join(f.Args(), " ")
	q, err := finlit.ParseQuery(s)
	if err != nil {
		return usage("Error: %v", err)
	}
	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	row := d.Ledger.Sum(q)
	return output(c.format, func() string { return renderer.AggregateMarkdown(s, row) }, nil, row)
}
