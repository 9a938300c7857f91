package renderer

import "github.com/francocalvo/finlit"

// AllocationMarkdown renders the holdings of a portfolio and their weights.
func AllocationMarkdown(a *finlit.Allocation) string {
	partials := map[string]string{
		"allocation_holdings": "allocation_holdings.md",
		"allocation_classes":  "allocation_classes.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, a)
}
