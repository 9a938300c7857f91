package finlit

import (
	"log"
	"maps"
	"regexp"
	"slices"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// AggregateQuery sums the postings of a ledger.
type AggregateQuery struct {
	Accounts []*regexp.Regexp // all must match the posting account; none matches all
	From     date.Date        // included; zero means unbounded
	Until    date.Date        // excluded; zero means unbounded
	Currency string           // when set, convert each posting at its date
}

// matches reports whether a posting of tx passes the query filters.
func (q AggregateQuery) matches(tx Transaction, p Posting) bool {
	if !q.From.IsZero() && tx.Date.Before(q.From) {
		return false
	}
	if !q.Until.IsZero() && !tx.Date.Before(q.Until) {
		return false
	}
	for _, re := range q.Accounts {
		if !re.MatchString(p.Account) {
			return false
		}
	}
	return true
}

// AggregateRow is the single row of an aggregate query: a total per
// commodity. Converted postings are totalled under the query currency;
// postings that could not be converted keep their own commodity.
type AggregateRow struct {
	Totals map[string]decimal.Decimal
}

// Number returns the total in a commodity. An empty result is zero.
func (r AggregateRow) Number(cur string) decimal.Decimal { return r.Totals[cur] }

// Currencies returns the commodities of the row, sorted.
func (r AggregateRow) Currencies() []string { return slices.Sorted(maps.Keys(r.Totals)) }

// IsEmpty reports whether no posting matched.
func (r AggregateRow) IsEmpty() bool { return len(r.Totals) == 0 }

// Sum runs an aggregate query.
func (l *Ledger) Sum(q AggregateQuery) AggregateRow {
	row := AggregateRow{Totals: make(map[string]decimal.Decimal)}
	pm := l.PriceMap()
	for tx := range l.Transactions() {
		if !q.Until.IsZero() && !tx.Date.Before(q.Until) {
			break
		}
		for _, p := range tx.Postings {
			if !q.matches(tx, p) {
				continue
			}
			units := p.Units
			if q.Currency != "" {
				if converted, ok := pm.Convert(units, q.Currency, tx.Date); ok {
					units = converted
				}
			}
			row.Totals[units.cur] = row.Totals[units.cur].Add(units.value)
		}
	}
	return row
}

// ExpenseRow is one expense posting with its classification.
type ExpenseRow struct {
	Date        date.Date
	Account     string
	Category    string // second account component
	Subcategory string // third account component
	Payee       string
	Narration   string
	Tags        []string
	Amounts     map[string]decimal.Decimal // in each requested currency
}

// IncomeRow is one income posting. Amounts are positive.
type IncomeRow struct {
	Date      date.Date
	Account   string
	Origin    string // third account component, e.g. "Job" in Income:Salary:Job
	Payee     string
	Narration string
	Amounts   map[string]decimal.Decimal
}

// convertedAmounts converts units into each currency at the posting date.
// Currencies without a rate are left out and logged.
func convertedAmounts(pm *PriceMap, units Amount, on date.Date, currencies []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(currencies))
	for _, cur := range currencies {
		c, ok := pm.Convert(units, cur, on)
		if !ok {
			log.Print(UnresolvablePriceError{On: on, Currency: units.cur, Target: cur, Residual: units.value})
			continue
		}
		out[cur] = c.value
	}
	return out
}

// Expenses lists every expense posting, in ledger order, valued in the given
// currencies.
func (l *Ledger) Expenses(currencies ...string) []ExpenseRow {
	types := l.Options().AccountTypes
	pm := l.PriceMap()
	var rows []ExpenseRow
	for tx := range l.Transactions() {
		for _, p := range tx.Postings {
			if types.Classify(p.Account) != ExpenseAccount {
				continue
			}
			rows = append(rows, ExpenseRow{
				Date:        tx.Date,
				Account:     p.Account,
				Category:    AccountLeaf(AccountRoot(p.Account, 2)),
				Subcategory: AccountLeaf(AccountRoot(p.Account, 3)),
				Payee:       tx.Payee,
				Narration:   tx.Narration,
				Tags:        tx.Tags,
				Amounts:     convertedAmounts(pm, p.Units, tx.Date, currencies),
			})
		}
	}
	return rows
}

// Income lists every income posting, in ledger order, as positive amounts in
// the given currencies.
func (l *Ledger) Income(currencies ...string) []IncomeRow {
	types := l.Options().AccountTypes
	pm := l.PriceMap()
	var rows []IncomeRow
	for tx := range l.Transactions() {
		for _, p := range tx.Postings {
			if types.Classify(p.Account) != IncomeAccount {
				continue
			}
			rows = append(rows, IncomeRow{
				Date:      tx.Date,
				Account:   p.Account,
				Origin:    AccountLeaf(AccountRoot(p.Account, 3)),
				Payee:     tx.Payee,
				Narration: tx.Narration,
				Amounts:   convertedAmounts(pm, p.Units.Abs(), tx.Date, currencies),
			})
		}
	}
	return rows
}
