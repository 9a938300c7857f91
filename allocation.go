package finlit

import (
	"cmp"
	"fmt"
	"log"
	"slices"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// Holding is a position of an investment portfolio.
type Holding struct {
	Commodity  string          `json:"commodity"`
	Name       string          `json:"name"`
	AssetClass string          `json:"asset_class"`
	Portfolio  string          `json:"portfolio"`
	Units      decimal.Decimal `json:"units"`
	Value      decimal.Decimal `json:"value"`
	Weight     decimal.Decimal `json:"weight"` // percent of the total value
}

// Allocation is the breakdown of a portfolio on a date.
type Allocation struct {
	Date     date.Date
	Prefix   string
	Currency string
	Total    decimal.Decimal
	Holdings []Holding
}

// NewAllocation values the commodities held under the account prefix at the
// end of 'on' and weights them. Only positive holdings are kept, largest
// first. Holdings that cannot be valued in currency are logged and left out.
func NewAllocation(l *Ledger, prefix, currency string, on date.Date) (*Allocation, error) {
	if currency == "" {
		return nil, fmt.Errorf("allocation needs a reporting currency")
	}
	balances := NewBalances()
	types := l.Options().AccountTypes
	for tx := range l.Transactions() {
		if tx.Date.After(on) {
			break
		}
		balances.Apply(tx, types, PrefixFilter(prefix))
	}

	pm := l.PriceMap()
	a := &Allocation{Date: on, Prefix: prefix, Currency: currency}
	for _, cur := range balances.Assets.Commodities() {
		units := balances.Assets.Units(cur)
		if !units.IsPositive() {
			continue
		}
		value, ok := pm.Convert(A(units, cur), currency, on)
		if !ok {
			log.Print(UnresolvablePriceError{On: on, Currency: cur, Target: currency, Residual: units})
			continue
		}
		h := Holding{Commodity: cur, Units: units, Value: value.value}
		if c, ok := l.Commodity(cur); ok {
			h.Name, h.AssetClass, h.Portfolio = c.Name, c.AssetClass, c.Portfolio
		}
		if h.Name == "" {
			h.Name = cur
		}
		a.Holdings = append(a.Holdings, h)
		a.Total = a.Total.Add(h.Value)
	}
	for i := range a.Holdings {
		a.Holdings[i].Weight = ratio(a.Holdings[i].Value, a.Total)
	}
	slices.SortFunc(a.Holdings, func(x, y Holding) int {
		if c := y.Value.Cmp(x.Value); c != 0 {
			return c
		}
		return cmp.Compare(x.Commodity, y.Commodity)
	})
	return a, nil
}

// ByAssetClass totals the holdings per asset class, largest first.
func (a *Allocation) ByAssetClass() []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, h := range a.Holdings {
		class := h.AssetClass
		if class == "" {
			class = "unclassified"
		}
		totals[class] = totals[class].Add(h.Value)
	}
	out := make([]CategoryTotal, 0, len(totals))
	for c, v := range totals {
		out = append(out, CategoryTotal{Category: c, Amount: v})
	}
	slices.SortFunc(out, func(x, y CategoryTotal) int {
		if c := y.Amount.Cmp(x.Amount); c != 0 {
			return c
		}
		return cmp.Compare(x.Category, y.Category)
	})
	return out
}
