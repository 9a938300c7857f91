package renderer

import (
	"time"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
)

// Coast is the view of a Coast FIRE curve, one row per year end plus the
// current month.
type Coast struct {
	Currency string
	Today    date.Date
	Number   float64 // coast number today
	Points   []finlit.CoastFirePoint
}

// CoastMarkdown renders a Coast FIRE curve.
func CoastMarkdown(points []finlit.CoastFirePoint, number float64, currency string, today date.Date) string {
	v := Coast{Currency: currency, Today: today, Number: number}
	current := today.EndOf(date.Monthly)
	for i, pt := range points {
		if pt.Date.Month() == time.December || pt.Date == current || i == len(points)-1 {
			v.Points = append(v.Points, pt)
		}
	}
	return renderTemplate("coast", "coast.md", nil, v)
}
