package finlit

import (
	"crypto/sha256"
	"encoding/hex"
	"iter"
	"slices"

	"github.com/francocalvo/finlit/date"
)

// Options are the ledger-wide settings declared by option entries.
type Options struct {
	Title               string
	OperatingCurrencies []string
	AccountTypes        AccountTypes
}

// Ledger is the in-memory record of a ledger file.
//
// Dated entries are always in chronological order; entries on the same day
// keep the order in which they were appended. A loaded ledger is treated as
// immutable: every analysis reads it, none modifies it.
type Ledger struct {
	name        string
	options     Options
	settings    []Option
	entries     []Entry
	commodities map[string]Commodity
	warnings    []error

	prices      *PriceMap // built on first use
	fingerprint string    // computed on first use
}

// NewLedger creates an empty ledger with default account names.
func NewLedger() *Ledger {
	return &Ledger{
		options:     Options{AccountTypes: DefaultAccountTypes()},
		commodities: make(map[string]Commodity),
	}
}

// Name returns the name of the file the ledger was loaded from, if any.
func (l *Ledger) Name() string { return l.name }

// Options returns the ledger options.
func (l *Ledger) Options() Options { return l.options }

// Errors returns the problems found while loading, in file order. They do not
// prevent the ledger from being used.
func (l *Ledger) Errors() []error { return slices.Clone(l.warnings) }

// Append adds entries to the ledger, keeping it chronological.
func (l *Ledger) Append(entries ...Entry) {
	for _, e := range entries {
		switch v := e.(type) {
		case Option:
			l.settings = append(l.settings, v)
			l.applyOption(v)
		case Commodity:
			l.commodities[v.Currency] = v
			l.entries = append(l.entries, v)
		default:
			l.entries = append(l.entries, e)
		}
	}
	slices.SortStableFunc(l.entries, func(a, b Entry) int { return a.When().Compare(b.When()) })
	l.prices, l.fingerprint = nil, ""
}

func (l *Ledger) applyOption(o Option) {
	switch o.Name {
	case OptionTitle:
		l.options.Title = o.Value
	case OptionOperatingCurrency:
		if !slices.Contains(l.options.OperatingCurrencies, o.Value) {
			l.options.OperatingCurrencies = append(l.options.OperatingCurrencies, o.Value)
		}
	case OptionNameAssets:
		l.options.AccountTypes.Assets = o.Value
	case OptionNameLiabilities:
		l.options.AccountTypes.Liabilities = o.Value
	case OptionNameEquity:
		l.options.AccountTypes.Equity = o.Value
	case OptionNameIncome:
		l.options.AccountTypes.Income = o.Value
	case OptionNameExpenses:
		l.options.AccountTypes.Expenses = o.Value
	}
}

// Entries iterates over options first, then dated entries in order.
func (l *Ledger) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, o := range l.settings {
			if !yield(o) {
				return
			}
		}
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Transactions iterates over the transactions accepted by all filters.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
	next:
		for _, e := range l.entries {
			tx, ok := e.(Transaction)
			if !ok {
				continue
			}
			for _, f := range filters {
				if !f(tx) {
					continue next
				}
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Prices iterates over the price entries.
func (l *Ledger) Prices() iter.Seq[Price] {
	return func(yield func(Price) bool) {
		for _, e := range l.entries {
			if p, ok := e.(Price); ok && !yield(p) {
				return
			}
		}
	}
}

// Commodity returns the declaration of a commodity.
func (l *Ledger) Commodity(cur string) (Commodity, bool) {
	c, ok := l.commodities[cur]
	return c, ok
}

// PriceMap returns the price table built from the ledger price entries.
func (l *Ledger) PriceMap() *PriceMap {
	if l.prices == nil {
		l.prices = BuildPriceMap(l.Prices())
	}
	return l.prices
}

// OldestTransactionDate returns the date of the first transaction, or the zero
// date when there is none.
func (l *Ledger) OldestTransactionDate() date.Date {
	for tx := range l.Transactions() {
		return tx.Date
	}
	return date.Date{}
}

// NewestTransactionDate returns the date of the last transaction, or the zero
// date when there is none.
func (l *Ledger) NewestTransactionDate() date.Date {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if tx, ok := l.entries[i].(Transaction); ok {
			return tx.Date
		}
	}
	return date.Date{}
}

// Fingerprint identifies the ledger content. Two ledgers with the same
// canonical encoding share a fingerprint.
func (l *Ledger) Fingerprint() string {
	if l.fingerprint == "" {
		h := sha256.New()
		// hash.Hash never returns write errors.
		_ = EncodeLedger(h, l)
		l.fingerprint = hex.EncodeToString(h.Sum(nil))
	}
	return l.fingerprint
}
