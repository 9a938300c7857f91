package finlit

import (
	"maps"
	"slices"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// lot groups units of a commodity by the currency they are held at cost in.
// Units held without cost have an empty cost currency.
type lot struct {
	commodity    string
	costCurrency string
}

type position struct {
	units decimal.Decimal
	cost  decimal.Decimal // total book cost, in the lot cost currency
}

// Inventory is a multiset of commodity quantities.
//
// Commodities that were once present stay listed after their quantity went
// back to zero.
type Inventory struct {
	lots map[lot]position
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{lots: make(map[lot]position)}
}

// Add adds the units of a posting, and their book cost when held at cost.
func (inv *Inventory) Add(p Posting) {
	k := lot{commodity: p.Units.cur}
	if p.Cost != nil {
		k.costCurrency = p.Cost.cur
	}
	pos := inv.lots[k]
	pos.units = pos.units.Add(p.Units.value)
	if p.Cost != nil {
		pos.cost = pos.cost.Add(p.Units.value.Mul(p.Cost.value))
	}
	inv.lots[k] = pos
}

// Units returns the quantity held of a commodity, across lots.
func (inv *Inventory) Units(commodity string) decimal.Decimal {
	total := decimal.Zero
	for k, pos := range inv.lots {
		if k.commodity == commodity {
			total = total.Add(pos.units)
		}
	}
	return total
}

// Commodities returns the commodities ever held, sorted.
func (inv *Inventory) Commodities() []string {
	set := make(map[string]bool)
	for k := range inv.lots {
		set[k.commodity] = true
	}
	return slices.Sorted(maps.Keys(set))
}

// IsEmpty reports whether nothing was ever added.
func (inv *Inventory) IsEmpty() bool { return len(inv.lots) == 0 }

// MarketValue reduces the inventory to plain quantities: units held at cost
// are valued at the latest price in their cost currency, or at book cost when
// there is none; other units are kept as they are.
func (inv *Inventory) MarketValue(pm *PriceMap, on date.Date) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(inv.lots))
	for k, pos := range inv.lots {
		if k.costCurrency == "" {
			out[k.commodity] = out[k.commodity].Add(pos.units)
			continue
		}
		value := pos.cost
		if rate, _, ok := pm.Price(k.commodity, k.costCurrency, on); ok {
			value = pos.units.Mul(rate)
		}
		out[k.costCurrency] = out[k.costCurrency].Add(value)
	}
	return out
}

// PostingFilter selects postings by account.
type PostingFilter func(account string) bool

// PrefixFilter accepts postings to any of the given accounts or their
// sub-accounts. With no prefix it returns nil, which accepts everything.
func PrefixFilter(prefixes ...string) PostingFilter {
	if len(prefixes) == 0 {
		return nil
	}
	return func(account string) bool {
		for _, p := range prefixes {
			if HasAccountPrefix(account, p) {
				return true
			}
		}
		return false
	}
}

// Balances accumulates the balance sheet of a ledger: everything held, and
// the assets and liabilities separately.
type Balances struct {
	Balance     *Inventory
	Assets      *Inventory
	Liabilities *Inventory
}

// NewBalances returns three empty inventories.
func NewBalances() *Balances {
	return &Balances{Balance: NewInventory(), Assets: NewInventory(), Liabilities: NewInventory()}
}

// Apply adds the asset and liability postings of tx accepted by filter.
// Transactions must be applied in chronological order.
func (b *Balances) Apply(tx Transaction, types AccountTypes, filter PostingFilter) {
	for _, p := range tx.Postings {
		if filter != nil && !filter(p.Account) {
			continue
		}
		switch types.Classify(p.Account) {
		case AssetAccount:
			b.Balance.Add(p)
			b.Assets.Add(p)
		case LiabilityAccount:
			b.Balance.Add(p)
			b.Liabilities.Add(p)
		}
	}
}
