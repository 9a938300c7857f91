package renderer

import (
	"github.com/francocalvo/finlit"
	"github.com/shopspring/decimal"
)

// NetWorth is the view of a valuation series.
type NetWorth struct {
	Currency string
	Prefix   string // account prefix the series is restricted to, if any
	Points   finlit.ValuationSeries
	Last     finlit.ValuationPoint
	Change   decimal.Decimal // net worth variation over the series
}

// NetWorthMarkdown renders a valuation series as a markdown table.
func NetWorthMarkdown(s finlit.ValuationSeries, currency, prefix string) string {
	v := NetWorth{Currency: currency, Prefix: prefix, Points: s, Last: s.Last()}
	if len(s) > 0 {
		v.Change = v.Last.NetWorth.Sub(s[0].NetWorth)
	}
	partials := map[string]string{
		"networth_title": "networth_title.md",
		"networth_table": "networth_table.md",
	}
	return renderTemplate("networth", "networth.md", partials, v)
}
