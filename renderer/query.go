package renderer

import "github.com/francocalvo/finlit"

type aggregate struct {
	Query string
	Row   finlit.AggregateRow
}

// AggregateMarkdown renders the result of an aggregate query, one line per
// commodity.
func AggregateMarkdown(query string, row finlit.AggregateRow) string {
	return renderTemplate("aggregate", "aggregate.md", nil, aggregate{Query: query, Row: row})
}
