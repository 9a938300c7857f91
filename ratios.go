package finlit

import (
	"cmp"
	"maps"
	"slices"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// RatioOptions configures the expense ratios.
type RatioOptions struct {
	Currency string
	// NetIncomeOrigins lists the income origins counted as net income, like
	// "Job". Empty counts every origin.
	NetIncomeOrigins []string
	// ExcludedSubcategories lists the expense subcategories left out of net
	// expenses, like bank fees.
	ExcludedSubcategories []string
}

// RatioPoint holds the expense ratios of a month, in percent.
type RatioPoint struct {
	Month       date.Date       `json:"month"` // first day of the month
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetIncome   decimal.Decimal `json:"net_income"`
	NetExpenses decimal.Decimal `json:"net_expenses"`
	Gross       decimal.Decimal `json:"gross_ratio"`
	Net         decimal.Decimal `json:"net_ratio"`
}

var hundred = decimal.NewFromInt(100)

// ratio returns a/b in percent rounded to two decimals, zero when b is zero.
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Mul(hundred).Round(2)
}

// ExpenseRatios returns, for every month with income, the share of income
// spent. The gross ratio compares all expenses to all income; the net ratio
// compares expenses outside the excluded subcategories to the income of the
// configured origins.
func ExpenseRatios(l *Ledger, opts RatioOptions) []RatioPoint {
	months := make(map[date.Date]*RatioPoint)
	month := func(on date.Date) *RatioPoint {
		m := on.StartOf(date.Monthly)
		p, ok := months[m]
		if !ok {
			p = &RatioPoint{Month: m}
			months[m] = p
		}
		return p
	}

	for _, row := range l.Income(opts.Currency) {
		v := row.Amounts[opts.Currency]
		p := month(row.Date)
		p.Income = p.Income.Add(v)
		if len(opts.NetIncomeOrigins) == 0 || slices.Contains(opts.NetIncomeOrigins, row.Origin) {
			p.NetIncome = p.NetIncome.Add(v)
		}
	}
	for _, row := range l.Expenses(opts.Currency) {
		v := row.Amounts[opts.Currency]
		p := month(row.Date)
		p.Expenses = p.Expenses.Add(v)
		if !slices.Contains(opts.ExcludedSubcategories, row.Subcategory) {
			p.NetExpenses = p.NetExpenses.Add(v)
		}
	}

	var out []RatioPoint
	for _, m := range slices.SortedFunc(maps.Keys(months), date.Date.Compare) {
		p := months[m]
		if p.Income.IsZero() {
			continue
		}
		p.Gross = ratio(p.Expenses, p.Income)
		p.Net = ratio(p.NetExpenses, p.NetIncome)
		out = append(out, *p)
	}
	return out
}

// CategoryTotal is the spending of an expense category over a range.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpensesByCategory totals the expenses within r by category, largest first.
func ExpensesByCategory(l *Ledger, currency string, r date.Range) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, row := range l.Expenses(currency) {
		if !r.Contains(row.Date) {
			continue
		}
		totals[row.Category] = totals[row.Category].Add(row.Amounts[currency])
	}
	out := make([]CategoryTotal, 0, len(totals))
	for c, v := range totals {
		out = append(out, CategoryTotal{Category: c, Amount: v})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}
