package finlit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingMetrics(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	m, err := TrailingMetrics(l, MetricsOptions{Until: day("2024-03-01"), Months: 2, Currency: "USD"})
	require.NoError(t, err)

	assert.Equal(t, day("2024-01-01"), m.From)
	assert.True(t, m.Income.Equal(dec(3500)), "Income = %v, want 3500", m.Income)
	// 80000 ARS at 800, 8000 ARS at 800, 100000 ARS at 1000.
	assert.True(t, m.Expenses.Equal(dec(105)), "Expenses = %v, want 105", m.Expenses)
	// Cash 6112, VOO at cost 800, card balance converted at each posting date.
	assert.True(t, m.NetWorth.Equal(dec(6790)), "NetWorth = %v, want 6790", m.NetWorth)
	assert.True(t, m.SavingsRate().Equal(dec(97)), "SavingsRate() = %v, want 97", m.SavingsRate())
}

func TestTrailingMetricsAccountPatterns(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	m, err := TrailingMetrics(l, MetricsOptions{
		Until:           day("2024-03-01"),
		Months:          1,
		Currency:        "USD",
		IncomeAccounts:  "^Income:Salary",
		ExpenseAccounts: "^Expenses:Food",
	})
	require.NoError(t, err)
	assert.True(t, m.Income.Equal(dec(3000)), "Income = %v, want 3000", m.Income)
	assert.True(t, m.Expenses.Equal(dec(100)), "Expenses = %v, want 100", m.Expenses)
}

func TestTrailingMetricsErrors(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	for name, opts := range map[string]MetricsOptions{
		"no months":   {Months: 0, Currency: "USD"},
		"no currency": {Months: 1},
		"bad pattern": {Months: 1, Currency: "USD", IncomeAccounts: "("},
	} {
		if _, err := TrailingMetrics(l, opts); err == nil {
			t.Errorf("TrailingMetrics(%s) = nil error, want one", name)
		}
	}
}

func TestSavingsRateWithoutIncome(t *testing.T) {
	if got := (Metrics{Expenses: dec(10)}).SavingsRate(); !got.IsZero() {
		t.Errorf("SavingsRate() = %v, want 0", got)
	}
}

func TestTrailingMetricsLogsUnconverted(t *testing.T) {
	logs := captureLog(t)
	l := decodeTestLedger(t, `{"command":"txn","date":"2024-01-05","postings":[{"account":"Assets:Cash","amount":3000,"currency":"USD"},{"account":"Income:Salary:Job","amount":-3000,"currency":"USD"}]}
{"command":"txn","date":"2024-01-06","postings":[{"account":"Assets:Cash","amount":1000000,"currency":"BRL"},{"account":"Income:Freelance:Side","amount":-1000000,"currency":"BRL"}]}
`)
	m, err := TrailingMetrics(l, MetricsOptions{Until: day("2024-02-01"), Months: 1, Currency: "USD"})
	require.NoError(t, err)
	assert.True(t, m.Income.Equal(dec(3000)), "Income = %v, want 3000", m.Income)
	assert.Contains(t, logs.String(), "income before 2024-02-01: 2024-02-01: no price for BRL in USD, dropping -1000000 BRL")
	assert.Contains(t, logs.String(), "net worth before 2024-02-01: 2024-02-01: no price for BRL in USD, dropping 1000000 BRL")
}
