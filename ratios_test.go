package finlit

import (
	"strings"
	"testing"

	"github.com/francocalvo/finlit/date"
)

func TestExpenseRatios(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	got := ExpenseRatios(l, RatioOptions{
		Currency:              "USD",
		NetIncomeOrigins:      []string{"Job"},
		ExcludedSubcategories: []string{"Comisiones"},
	})
	want := []struct {
		month               string
		income, netIncome   float64
		expenses, netExp    float64
		gross, net          float64
	}{
		{"2024-01-01", 3000, 3000, 110, 100, 3.67, 3.33},
		{"2024-02-01", 4000, 3000, 100, 100, 2.5, 3.33},
	}
	if len(got) != len(want) {
		t.Fatalf("len(ExpenseRatios()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Month != day(w.month) {
			t.Errorf("ExpenseRatios()[%d].Month = %v, want %s", i, g.Month, w.month)
		}
		for _, c := range []struct {
			name      string
			got, want float64
		}{
			{"Income", g.Income.InexactFloat64(), w.income},
			{"NetIncome", g.NetIncome.InexactFloat64(), w.netIncome},
			{"Expenses", g.Expenses.InexactFloat64(), w.expenses},
			{"NetExpenses", g.NetExpenses.InexactFloat64(), w.netExp},
			{"Gross", g.Gross.InexactFloat64(), w.gross},
			{"Net", g.Net.InexactFloat64(), w.net},
		} {
			if c.got != c.want {
				t.Errorf("%s %s = %v, want %v", w.month, c.name, c.got, c.want)
			}
		}
	}
}

func TestExpenseRatiosSkipsMonthsWithoutIncome(t *testing.T) {
	l := decodeTestLedger(t, `{"command":"txn","date":"2024-01-05","postings":[{"account":"Assets:Cash","amount":100,"currency":"USD"},{"account":"Income:Salary:Job","amount":-100,"currency":"USD"}]}
{"command":"txn","date":"2024-02-05","postings":[{"account":"Expenses:Food:Groceries","amount":30,"currency":"USD"},{"account":"Assets:Cash","amount":-30,"currency":"USD"}]}
`)
	got := ExpenseRatios(l, RatioOptions{Currency: "USD"})
	if len(got) != 1 || got[0].Month != day("2024-01-01") {
		t.Fatalf("ExpenseRatios() = %+v, want January only", got)
	}
	if !got[0].Gross.IsZero() {
		t.Errorf("Gross = %v, want 0", got[0].Gross)
	}
}

func TestExpensesByCategory(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	got := ExpensesByCategory(l, "USD", date.NewRange(day("2024-01-15"), date.Monthly))
	want := []CategoryTotal{{"Food", dec(100)}, {"Bank", dec(10)}}
	if len(got) != len(want) {
		t.Fatalf("ExpensesByCategory() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("ExpensesByCategory()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpenseRatiosLogsUnconverted(t *testing.T) {
	logs := captureLog(t)
	l := decodeTestLedger(t, `{"command":"txn","date":"2024-01-05","postings":[{"account":"Assets:Cash","amount":100,"currency":"USD"},{"account":"Income:Salary:Job","amount":-100,"currency":"USD"}]}
{"command":"txn","date":"2024-01-08","postings":[{"account":"Expenses:Food:Groceries","amount":500,"currency":"BRL"},{"account":"Assets:Cash","amount":-500,"currency":"BRL"}]}
`)
	got := ExpenseRatios(l, RatioOptions{Currency: "USD"})
	if len(got) != 1 || !got[0].Expenses.IsZero() {
		t.Fatalf("ExpenseRatios() = %+v, want January without the BRL expense", got)
	}
	if want := "2024-01-08: no price for BRL in USD, dropping 500 BRL"; !strings.Contains(logs.String(), want) {
		t.Errorf("log = %q, want it to contain %q", logs.String(), want)
	}
}
