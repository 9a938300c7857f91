package renderer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/francocalvo/finlit"
)

func float(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// writeCSV writes a header and its records.
func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

// WriteValuationCSV writes a valuation series with the columns
// date, net_worth, assets, liabilities.
func WriteValuationCSV(w io.Writer, s finlit.ValuationSeries) error {
	records := make([][]string, 0, len(s))
	for _, p := range s {
		records = append(records, []string{p.Date.String(), p.NetWorth.StringFixed(2), p.Assets.StringFixed(2), p.Liabilities.StringFixed(2)})
	}
	return writeCSV(w, []string{"date", "net_worth", "assets", "liabilities"}, records)
}

// WriteProjectionCSV writes every row of a projection table, one column per
// scenario.
func WriteProjectionCSV(w io.Writer, t finlit.ProjectionTable) error {
	header := []string{"date"}
	for _, s := range finlit.Scenarios {
		header = append(header, string(s))
	}
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		record := []string{r.Date.String()}
		for _, s := range finlit.Scenarios {
			record = append(record, float(r.Value(s)))
		}
		records = append(records, record)
	}
	return writeCSV(w, header, records)
}

// WriteCoastCSV writes a Coast FIRE curve with the columns date, age,
// coast_value. The age is empty when unknown.
func WriteCoastCSV(w io.Writer, points []finlit.CoastFirePoint) error {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		age := ""
		if p.Age != 0 {
			age = strconv.Itoa(p.Age)
		}
		records = append(records, []string{p.Date.String(), age, float(p.Value)})
	}
	return writeCSV(w, []string{"date", "age", "coast_value"}, records)
}

// WriteRatiosCSV writes the monthly expense ratios.
func WriteRatiosCSV(w io.Writer, points []finlit.RatioPoint) error {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.Month.Format("2006-01"),
			p.Income.StringFixed(2), p.Expenses.StringFixed(2), p.Gross.StringFixed(2),
			p.NetIncome.StringFixed(2), p.NetExpenses.StringFixed(2), p.Net.StringFixed(2),
		})
	}
	return writeCSV(w, []string{"month", "income", "expenses", "gross_ratio", "net_income", "net_expenses", "net_ratio"}, records)
}
