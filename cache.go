package finlit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/francocalvo/finlit/date"
)

// Cache memoizes ledger loads and the pure computations made on them.
//
// It is owned by the caller and lives as long as the caller wants: a CLI
// invocation, or an interactive session issuing many queries. Values handed
// out are copies, so callers may modify them freely. A Cache is not safe for
// concurrent use.
type Cache struct {
	ledgers     map[string]*Ledger // by path and content hash
	valuations  map[valuationKey]ValuationSeries
	projections map[projectionKey]ProjectionTable
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		ledgers:     make(map[string]*Ledger),
		valuations:  make(map[valuationKey]ValuationSeries),
		projections: make(map[projectionKey]ProjectionTable),
	}
}

// Ledger loads the ledger at path, reusing the previous load as long as the
// file content is unchanged.
func (c *Cache) Ledger(path string) (*Ledger, error) {
	sum, err := fileHash(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	key := path + "@" + sum
	if l, ok := c.ledgers[key]; ok {
		return l, nil
	}
	l, err := LoadLedger(path)
	if err != nil {
		return nil, err
	}
	c.ledgers[key] = l
	return l, nil
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// valuationKey identifies a valuation walk. The filter is identified by the
// prefix it was built from, since functions are not comparable.
type valuationKey struct {
	ledger   string
	from, to date.Date
	sampling date.Period
	currency string
	prefix   string
}

// Valuation memoizes NewValuationSeries. prefix is the account prefix the
// walk is restricted to, empty for the whole balance sheet.
func (c *Cache) Valuation(l *Ledger, opts HistoryOptions, prefix string) (ValuationSeries, error) {
	key := valuationKey{l.Fingerprint(), opts.From, opts.To, opts.Sampling, opts.Currency, prefix}
	if s, ok := c.valuations[key]; ok {
		return slices.Clone(s), nil
	}
	if prefix != "" {
		opts.Filter = PrefixFilter(prefix)
	}
	s, err := NewValuationSeries(l, opts)
	if err != nil {
		return nil, err
	}
	c.valuations[key] = s
	return slices.Clone(s), nil
}

type projectionKey struct {
	ledger      string
	params      string
	today       date.Date
	points      int
	first, last date.Date
}

// Projection memoizes BuildProjection for a ledger's historical series.
func (c *Cache) Projection(l *Ledger, p TrajectoryParams, historical ValuationSeries, today date.Date) ProjectionTable {
	key := projectionKey{
		ledger: l.Fingerprint(),
		params: fmt.Sprintf("%+v", p),
		today:  today,
		points: len(historical),
		last:   historical.Last().Date,
	}
	if len(historical) > 0 {
		key.first = historical[0].Date
	}
	t, ok := c.projections[key]
	if !ok {
		t = BuildProjection(p, historical, today)
		c.projections[key] = t
	}
	return t.clone()
}

func (t ProjectionTable) clone() ProjectionTable {
	out := ProjectionTable{Start: t.Start, Contributions: maps.Clone(t.Contributions)}
	out.Rows = make([]ProjectionRow, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = ProjectionRow{Date: r.Date, Values: maps.Clone(r.Values)}
	}
	return out
}
