package finlit

import (
	"fmt"
	"log"
	"regexp"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// MetricsOptions parameterizes TrailingMetrics.
type MetricsOptions struct {
	Until           date.Date // excluded; zero means the first day of the current month
	Months          int       // trailing window length
	Currency        string
	IncomeAccounts  string // regular expression; empty means the income root
	ExpenseAccounts string // regular expression; empty means the expenses root
}

// Metrics are the scalars feeding the projections.
type Metrics struct {
	From, Until date.Date
	Currency    string
	Income      decimal.Decimal // average per month, positive
	Expenses    decimal.Decimal // average per month, positive
	NetWorth    decimal.Decimal // assets and liabilities before Until
}

// SavingsRate returns the share of income saved, in percent, or zero without
// income.
func (m Metrics) SavingsRate() decimal.Decimal {
	if m.Income.IsZero() {
		return decimal.Zero
	}
	return m.Income.Sub(m.Expenses).Div(m.Income).Mul(decimal.NewFromInt(100)).Round(2)
}

// TrailingMetrics computes the average monthly income and expenses over the
// months preceding Until, and the net worth just before it.
func TrailingMetrics(l *Ledger, opts MetricsOptions) (Metrics, error) {
	if opts.Months <= 0 {
		return Metrics{}, fmt.Errorf("trailing window must be at least one month, got %d", opts.Months)
	}
	if opts.Currency == "" {
		return Metrics{}, fmt.Errorf("metrics need a reporting currency")
	}
	types := l.Options().AccountTypes
	until := opts.Until
	if until.IsZero() {
		until = date.Today().StartOf(date.Monthly)
	}
	from := until.AddMonth(-opts.Months)

	income, err := accountPattern(opts.IncomeAccounts, types.Income)
	if err != nil {
		return Metrics{}, err
	}
	expenses, err := accountPattern(opts.ExpenseAccounts, types.Expenses)
	if err != nil {
		return Metrics{}, err
	}
	balanceSheet := regexp.MustCompile("^(" + regexp.QuoteMeta(types.Assets) + "|" + regexp.QuoteMeta(types.Liabilities) + ")(:|$)")

	months := decimal.NewFromInt(int64(opts.Months))
	m := Metrics{From: from, Until: until, Currency: opts.Currency}
	m.Income = converted(l.Sum(AggregateQuery{Accounts: []*regexp.Regexp{income}, From: from, Until: until, Currency: opts.Currency}),
		"income", opts.Currency, until).Abs().Div(months)
	m.Expenses = converted(l.Sum(AggregateQuery{Accounts: []*regexp.Regexp{expenses}, From: from, Until: until, Currency: opts.Currency}),
		"expenses", opts.Currency, until).Abs().Div(months)
	m.NetWorth = converted(l.Sum(AggregateQuery{Accounts: []*regexp.Regexp{balanceSheet}, Until: until, Currency: opts.Currency}),
		"net worth", opts.Currency, until)
	debugf("trailing metrics %s..%s: income %s expenses %s net worth %s", from, until, m.Income, m.Expenses, m.NetWorth)
	return m, nil
}

// converted returns the total of row in currency, logging the totals left in
// other commodities because they had no price.
func converted(row AggregateRow, what, currency string, until date.Date) decimal.Decimal {
	for _, cur := range row.Currencies() {
		if cur != currency && !row.Number(cur).IsZero() {
			log.Printf("%s before %s: %v", what, until, UnresolvablePriceError{On: until, Currency: cur, Target: currency, Residual: row.Number(cur)})
		}
	}
	return row.Number(currency)
}

// accountPattern compiles pattern, defaulting to the whole root account.
func accountPattern(pattern, root string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = "^" + regexp.QuoteMeta(root) + "(:|$)"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid account pattern %q: %w", pattern, err)
	}
	return re, nil
}
