package renderer

import "github.com/francocalvo/finlit"

// Ratios is the view of the monthly expense ratios.
type Ratios struct {
	Currency string
	Points   []finlit.RatioPoint
}

// RatiosMarkdown renders the monthly expense ratios.
func RatiosMarkdown(points []finlit.RatioPoint, currency string) string {
	return renderTemplate("ratios", "ratios.md", nil, Ratios{Currency: currency, Points: points})
}
