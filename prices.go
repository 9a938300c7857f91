package finlit

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// pair is an ordered (base, quote) currency pair: one base is worth rate quote.
type pair struct{ base, quote string }

func (p pair) String() string { return p.base + "/" + p.quote }

// PriceMap is a table of dated exchange rates.
//
// It is symmetric: a declared rate for (A, B) implies the inverse rate for
// (B, A) on the same day, unless (B, A) is also declared that day. A PriceMap
// is never modified once built; Project returns an overlay.
type PriceMap struct {
	rates  map[pair]*date.History[decimal.Decimal]
	quotes map[string][]string // base to sorted quote currencies
	parent *PriceMap
}

func newPriceMap(parent *PriceMap) *PriceMap {
	return &PriceMap{
		rates:  make(map[pair]*date.History[decimal.Decimal]),
		quotes: make(map[string][]string),
		parent: parent,
	}
}

func (pm *PriceMap) append(p pair, on date.Date, rate decimal.Decimal) {
	h, ok := pm.rates[p]
	if !ok {
		h = new(date.History[decimal.Decimal])
		pm.rates[p] = h
		q := pm.quotes[p.base]
		if i, found := slices.BinarySearch(q, p.quote); !found {
			pm.quotes[p.base] = slices.Insert(q, i, p.quote)
		}
	}
	h.Append(on, rate)
}

// BuildPriceMap builds the symmetric price table from price entries.
func BuildPriceMap(prices iter.Seq[Price]) *PriceMap {
	declared := newPriceMap(nil)
	for p := range prices {
		if p.Currency == p.Rate.cur || !p.Rate.value.IsPositive() {
			continue
		}
		declared.append(pair{p.Currency, p.Rate.cur}, p.Date, p.Rate.value)
	}

	pm := newPriceMap(nil)
	for p, h := range declared.rates {
		inverse := pair{p.quote, p.base}
		for on, rate := range h.Values() {
			pm.append(p, on, rate)
			if ih, ok := declared.rates[inverse]; ok {
				if _, explicit := ih.Get(on); explicit {
					continue
				}
			}
			pm.append(inverse, on, decimal.NewFromInt(1).Div(rate))
		}
	}
	return pm
}

// history returns the rates of a pair, looking through overlays.
func (pm *PriceMap) history(p pair) (*date.History[decimal.Decimal], bool) {
	for m := pm; m != nil; m = m.parent {
		if h, ok := m.rates[p]; ok {
			return h, true
		}
	}
	return nil, false
}

// Quotes returns the currencies base is directly quoted in, sorted.
func (pm *PriceMap) Quotes(base string) []string {
	var all []string
	for m := pm; m != nil; m = m.parent {
		all = append(all, m.quotes[base]...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// Price returns the most recent direct rate of base in quote on or before
// 'on', and the date of that rate. A currency is always worth 1 of itself.
func (pm *PriceMap) Price(base, quote string, on date.Date) (decimal.Decimal, date.Date, bool) {
	if base == quote {
		return decimal.NewFromInt(1), on, true
	}
	h, ok := pm.history(pair{base, quote})
	if !ok {
		return decimal.Zero, date.Date{}, false
	}
	d, v, ok := h.PointAsOf(on)
	return v, d, ok
}

// Rate resolves the rate of base in quote on 'on': directly when possible,
// otherwise through one intermediate currency quoted against both. Candidate
// intermediates are tried in lexical order. Rates are never chained through
// more than one intermediate.
func (pm *PriceMap) Rate(on date.Date, base, quote string) (decimal.Decimal, bool) {
	if rate, _, ok := pm.Price(base, quote, on); ok {
		return rate, true
	}
	for _, via := range pm.Quotes(base) {
		if via == quote {
			continue
		}
		first, _, ok := pm.Price(base, via, on)
		if !ok {
			continue
		}
		second, _, ok := pm.Price(via, quote, on)
		if !ok {
			continue
		}
		return first.Mul(second), true
	}
	return decimal.Zero, false
}

// Convert converts an amount to target at the rate of 'on'.
func (pm *PriceMap) Convert(a Amount, target string, on date.Date) (Amount, bool) {
	rate, ok := pm.Rate(on, a.cur, target)
	if !ok {
		return Amount{}, false
	}
	return A(a.value.Mul(rate), target), true
}

// Project returns an overlay where every currency lacking a direct rate to
// target on 'on' gains one, projected through an intermediate currency.
//
// The projected series spans the whole history of currency→intermediate: each
// of its rates is multiplied by the intermediate→target rate as of the same
// date. When several intermediates exist, the first in lexical order wins on
// the dates it covers. Currencies that cannot be projected are left out.
func (pm *PriceMap) Project(on date.Date, currencies []string, target string) *PriceMap {
	overlay := newPriceMap(pm)
	for _, cur := range currencies {
		if _, _, ok := pm.Price(cur, target, on); ok {
			continue
		}
		p := pair{cur, target}
		for _, via := range pm.Quotes(cur) {
			if via == target {
				continue
			}
			if _, _, ok := pm.Price(via, target, on); !ok {
				continue
			}
			h, _ := pm.history(pair{cur, via})
			for d, rate := range h.Values() {
				second, _, ok := pm.Price(via, target, d)
				if !ok {
					continue
				}
				if existing, found := overlay.rates[p]; found {
					if _, taken := existing.Get(d); taken {
						continue
					}
				}
				overlay.append(p, d, rate.Mul(second))
			}
		}
	}
	return overlay
}

// Pairs returns the priced pairs, as "BASE/QUOTE", sorted.
func (pm *PriceMap) Pairs() []string {
	seen := make(map[string]bool)
	for m := pm; m != nil; m = m.parent {
		for p := range m.rates {
			seen[p.String()] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// UnresolvablePriceError reports a quantity that could not be converted to
// the reporting currency on a date. It is logged, not returned: the quantity
// is dropped from that date's valuation only.
type UnresolvablePriceError struct {
	On       date.Date
	Currency string
	Target   string
	Residual decimal.Decimal
}

func (e UnresolvablePriceError) Error() string {
	return fmt.Sprintf("%s: no price for %s in %s, dropping %s %s", e.On, e.Currency, e.Target, e.Residual, e.Currency)
}

// currencySetKey identifies a set of currencies.
func currencySetKey(currencies []string) string {
	s := slices.Clone(currencies)
	slices.Sort(s)
	return strings.Join(s, ",")
}
