package finlit

import (
	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// CommandType discriminates ledger entries in the JSONL file.
type CommandType string

const (
	CmdOption      CommandType = "option"
	CmdCommodity   CommandType = "commodity"
	CmdPrice       CommandType = "price"
	CmdTransaction CommandType = "txn"
)

// Entry is any directive of the ledger.
type Entry interface {
	What() CommandType
	When() date.Date
}

// Option sets a ledger-wide setting. Options have no date and are applied
// before any other entry.
type Option struct {
	Name  string
	Value string
}

func (Option) What() CommandType { return CmdOption }
func (Option) When() date.Date   { return date.Date{} }

// Option names understood by the ledger.
const (
	OptionTitle             = "title"
	OptionOperatingCurrency = "operating_currency"
	OptionNameAssets        = "name_assets"
	OptionNameLiabilities   = "name_liabilities"
	OptionNameEquity        = "name_equity"
	OptionNameIncome        = "name_income"
	OptionNameExpenses      = "name_expenses"
)

// Commodity declares a commodity, with the metadata used by allocation reports.
type Commodity struct {
	Date       date.Date
	Currency   string
	Name       string
	AssetClass string
	Portfolio  string
	Meta       map[string]string
}

func (c Commodity) What() CommandType { return CmdCommodity }
func (c Commodity) When() date.Date   { return c.Date }

// Price declares that on Date one unit of Currency is worth Rate.
type Price struct {
	Date     date.Date
	Currency string
	Rate     Amount
}

func (p Price) What() CommandType { return CmdPrice }
func (p Price) When() date.Date   { return p.Date }

// Posting moves Units into or out of Account.
//
// Cost is the per-unit book cost of units held at cost (shares, funds). Price
// is the per-unit conversion price of a currency exchange. Both are optional.
type Posting struct {
	Account string
	Units   Amount
	Cost    *Amount
	Price   *Amount
}

// Weight returns the amount the posting contributes to the balance of its
// transaction: units at cost, else units at price, else units.
func (p Posting) Weight() Amount {
	switch {
	case p.Cost != nil:
		return A(p.Units.value.Mul(p.Cost.value), p.Cost.cur)
	case p.Price != nil:
		return A(p.Units.value.Mul(p.Price.value), p.Price.cur)
	default:
		return p.Units
	}
}

// Transaction is a dated, balanced set of postings.
type Transaction struct {
	Date      date.Date
	Payee     string
	Narration string
	Tags      []string
	Postings  []Posting
}

func (t Transaction) What() CommandType { return CmdTransaction }
func (t Transaction) When() date.Date   { return t.Date }

// residuals returns, per weight currency, what prevents the transaction from
// balancing. Balanced transactions return an empty map.
func (t Transaction) residuals(tolerance decimal.Decimal) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, p := range t.Postings {
		w := p.Weight()
		sums[w.cur] = sums[w.cur].Add(w.value)
	}
	for cur, sum := range sums {
		if sum.Abs().LessThanOrEqual(tolerance) {
			delete(sums, cur)
		}
	}
	return sums
}
