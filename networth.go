package finlit

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// ValuationPoint is the value of the balance sheet on a day, in the reporting
// currency.
type ValuationPoint struct {
	Date        date.Date       `json:"date"`
	NetWorth    decimal.Decimal `json:"net_worth"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
}

// ValuationSeries is a chronological list of valuation points, one per sample
// date with no gaps.
type ValuationSeries []ValuationPoint

// Before returns the points dated strictly before 'on'.
func (s ValuationSeries) Before(on date.Date) ValuationSeries {
	i, _ := slices.BinarySearchFunc(s, on, func(p ValuationPoint, d date.Date) int { return p.Date.Compare(d) })
	return s[:i]
}

// Last returns the latest point, or a zero point when empty.
func (s ValuationSeries) Last() ValuationPoint {
	if len(s) == 0 {
		return ValuationPoint{}
	}
	return s[len(s)-1]
}

// HistoryOptions parameterizes a valuation walk.
type HistoryOptions struct {
	From     date.Date     // first sample; zero means the month of the first transaction
	To       date.Date     // last sample, included; zero means today
	Sampling date.Period   // date.Daily or date.Monthly usually
	Currency string        // reporting currency
	Filter   PostingFilter // restricts the accounts valued; nil means all
}

// NewValuationSeries replays the ledger and values its balance sheet at each
// sample date.
//
// A sample dated D reflects every transaction dated strictly before D. When no
// transaction predates From, the first point is a zero point. Quantities whose
// currency cannot be converted on a date are left out of that date only, and
// logged.
func NewValuationSeries(l *Ledger, opts HistoryOptions) (ValuationSeries, error) {
	if opts.Currency == "" {
		return nil, fmt.Errorf("valuation needs a reporting currency")
	}
	from, to := opts.From, opts.To
	if from.IsZero() {
		from = l.OldestTransactionDate().StartOf(date.Monthly)
		if from.IsZero() {
			from = date.Today().StartOf(date.Monthly)
		}
	}
	if to.IsZero() {
		to = date.Today()
	}

	w := &valuationWalk{
		prices:      l.PriceMap(),
		target:      opts.Currency,
		projections: make(map[string]*PriceMap),
	}
	types := l.Options().AccountTypes
	txs := slices.Collect(l.Transactions())
	balances := NewBalances()
	next := 0

	var series ValuationSeries
	for on := range opts.Sampling.Samples(from, to) {
		for ; next < len(txs) && txs[next].Date.Before(on); next++ {
			balances.Apply(txs[next], types, opts.Filter)
		}
		series = append(series, ValuationPoint{
			Date:        on,
			NetWorth:    w.value(balances.Balance, on),
			Assets:      w.value(balances.Assets, on),
			Liabilities: w.value(balances.Liabilities, on),
		})
	}
	debugf("valued %d samples from %s to %s in %s", len(series), from, to, opts.Currency)
	return series, nil
}

// valuationWalk converts inventories along a walk. Projected price maps are
// reused across dates needing the same set of projected currencies.
type valuationWalk struct {
	prices      *PriceMap
	target      string
	projections map[string]*PriceMap
}

func (w *valuationWalk) value(inv *Inventory, on date.Date) decimal.Decimal {
	quantities := inv.MarketValue(w.prices, on)
	currencies := slices.Sorted(maps.Keys(quantities))

	var missing []string
	for _, cur := range currencies {
		if _, _, ok := w.prices.Price(cur, w.target, on); !ok {
			missing = append(missing, cur)
		}
	}
	pm := w.prices
	if len(missing) > 0 {
		key := currencySetKey(missing)
		projected, ok := w.projections[key]
		if !ok || !resolvesAll(projected, missing, w.target, on) {
			projected = w.prices.Project(on, missing, w.target)
			w.projections[key] = projected
		}
		pm = projected
	}

	total := decimal.Zero
	for _, cur := range currencies {
		q := quantities[cur]
		rate, _, ok := pm.Price(cur, w.target, on)
		if !ok {
			// The projected series only covers the dates of the
			// currency→intermediate quotes.
			rate, ok = w.prices.Rate(on, cur, w.target)
		}
		if !ok {
			if !q.IsZero() {
				log.Print(UnresolvablePriceError{On: on, Currency: cur, Target: w.target, Residual: q})
			}
			continue
		}
		total = total.Add(q.Mul(rate))
	}
	return total
}

// resolvesAll reports whether pm has a rate to target for every currency.
func resolvesAll(pm *PriceMap, currencies []string, target string, on date.Date) bool {
	for _, cur := range currencies {
		if _, _, ok := pm.Price(cur, target, on); !ok {
			return false
		}
	}
	return true
}
