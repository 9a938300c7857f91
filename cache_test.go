package finlit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/francocalvo/finlit/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLedgerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheLedger(t *testing.T) {
	path := writeLedgerFile(t, sampleLedger)
	c := NewCache()

	first, err := c.Ledger(path)
	require.NoError(t, err)
	again, err := c.Ledger(path)
	require.NoError(t, err)
	assert.Same(t, first, again, "unchanged file is loaded once")

	require.NoError(t, os.WriteFile(path, []byte(sampleLedger+`{"command":"price","date":"2024-03-01","currency":"USD","amount":1100,"quote":"ARS"}`+"\n"), 0o644))
	changed, err := c.Ledger(path)
	require.NoError(t, err)
	assert.NotSame(t, first, changed, "changed file is reloaded")

	_, err = c.Ledger(filepath.Join(t.TempDir(), "missing.jsonl"))
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestCacheValuationIsACopy(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	c := NewCache()
	opts := HistoryOptions{From: day("2024-01-01"), To: day("2024-03-01"), Sampling: date.Monthly, Currency: "USD"}

	s, err := c.Valuation(l, opts, "")
	require.NoError(t, err)
	require.Len(t, s, 3)
	s[2].NetWorth = dec(-1)

	again, err := c.Valuation(l, opts, "")
	require.NoError(t, err)
	assert.True(t, again[2].NetWorth.Equal(dec(6892)), "cached series was modified: %v", again[2].NetWorth)

	investments, err := c.Valuation(l, opts, "Assets:Inversiones")
	require.NoError(t, err)
	assert.True(t, investments[2].NetWorth.Equal(dec(880)), "prefix is part of the key: %v", investments[2].NetWorth)
}

func TestCacheProjectionIsACopy(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	c := NewCache()
	p := testParams()
	historical := ValuationSeries{{Date: day("2024-02-01"), NetWorth: dec(2912)}}

	table := c.Projection(l, p, historical, day("2024-03-15"))
	want := table.Rows[0].Value(Probable)
	table.Rows[0].Values[Probable] = -1
	table.Contributions[Probable] = -1

	again := c.Projection(l, p, historical, day("2024-03-15"))
	assert.Equal(t, want, again.Rows[0].Value(Probable))
	assert.InDelta(t, 3395, again.Contributions[Probable], 1e-9)

	p.NetWorth = 0
	other := c.Projection(l, p, historical, day("2024-03-15"))
	assert.NotEqual(t, again.Rows[1].Value(Probable), other.Rows[1].Value(Probable), "parameters are part of the key")
}
