package finlit

import (
	"errors"
	"testing"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(`SELECT SUM(CONVERT(POSITION, 'USD', DATE)) AS amount_usd
		WHERE account ~ '^Expenses' AND date >= DATE('2024-01-01') AND DATE < DATE('2024-07-01')`)
	if err != nil {
		t.Fatalf("ParseQuery() unexpected error: %v", err)
	}
	if q.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", q.Currency)
	}
	if q.From != day("2024-01-01") || q.Until != day("2024-07-01") {
		t.Errorf("From, Until = %v, %v, want 2024-01-01, 2024-07-01", q.From, q.Until)
	}
	if len(q.Accounts) != 1 || !q.Accounts[0].MatchString("expenses:food") {
		t.Errorf("Accounts = %v, want a case-insensitive ^Expenses", q.Accounts)
	}
}

func TestParseQueryDateOperators(t *testing.T) {
	testCases := []struct {
		where       string
		from, until string
	}{
		{"date <= '2024-03-31'", "", "2024-04-01"},
		{"date > DATE('2024-03-31')", "2024-04-01", ""},
		{"date = '2024-03-31'", "2024-03-31", "2024-04-01"},
	}
	for _, tc := range testCases {
		q, err := ParseQuery("select number(sum(position)) where " + tc.where)
		if err != nil {
			t.Errorf("ParseQuery(%q) unexpected error: %v", tc.where, err)
			continue
		}
		if (tc.from != "" && q.From != day(tc.from)) || (tc.from == "" && !q.From.IsZero()) {
			t.Errorf("ParseQuery(%q).From = %v, want %q", tc.where, q.From, tc.from)
		}
		if (tc.until != "" && q.Until != day(tc.until)) || (tc.until == "" && !q.Until.IsZero()) {
			t.Errorf("ParseQuery(%q).Until = %v, want %q", tc.where, q.Until, tc.until)
		}
	}
}

func TestParseQueryErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"SUM(POSITION)",
		"SELECT POSITION",
		"SELECT SUM(CONVERT(POSITION))",
		"SELECT SUM(POSITION) WHERE account = 'Assets'",
		"SELECT SUM(POSITION) WHERE account ~ '('",
		"SELECT SUM(POSITION) WHERE date >= '2024-13-45'",
		"SELECT SUM(POSITION) WHERE payee ~ 'x'",
		"SELECT SUM(POSITION) WHERE account ~ 'x",
		"SELECT SUM(POSITION) ORDER",
	} {
		if _, err := ParseQuery(s); !errors.Is(err, ErrQuerySyntax) {
			t.Errorf("ParseQuery(%q) = %v, want a syntax error", s, err)
		}
	}
}

func TestSum(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	testCases := []struct {
		query string
		cur   string
		want  float64
	}{
		{"SELECT SUM(CONVERT(POSITION, 'USD', DATE)) WHERE account ~ '^Expenses'", "USD", 100 + 10 + 100},
		{"SELECT SUM(POSITION) WHERE account ~ '^Expenses' AND date < '2024-02-01'", "ARS", 88000},
		{"SELECT SUM(POSITION) WHERE account ~ '^Income' AND account ~ 'Job'", "USD", -6000},
		{"SELECT SUM(CONVERT(POSITION, 'USD', DATE)) WHERE account ~ '^Assets|^Liabilities' AND date < '2024-02-01'", "USD", 2200 + 800 - 88000.0/800},
		// Empty results are zero.
		{"SELECT SUM(POSITION) WHERE account ~ '^Equity'", "USD", 0},
	}
	for _, tc := range testCases {
		q, err := ParseQuery(tc.query)
		if err != nil {
			t.Fatalf("ParseQuery(%q) unexpected error: %v", tc.query, err)
		}
		if got := l.Sum(q).Number(tc.cur); !got.Equal(dec(tc.want)) {
			t.Errorf("Sum(%q).Number(%s) = %v, want %v", tc.query, tc.cur, got, tc.want)
		}
	}
}

func TestSumKeepsUnconverted(t *testing.T) {
	l := decodeTestLedger(t, `{"command":"txn","date":"2024-01-01","postings":[{"account":"Assets:Wallet","amount":1,"currency":"BTC"},{"account":"Equity:Opening","amount":-1,"currency":"BTC"}]}`)
	row := l.Sum(AggregateQuery{Currency: "USD"})
	if row.IsEmpty() || !row.Number("USD").IsZero() {
		t.Errorf("Sum() = %v, want BTC left unconverted", row.Totals)
	}
	if got := row.Currencies(); len(got) != 1 || got[0] != "BTC" {
		t.Errorf("Currencies() = %v, want [BTC]", got)
	}
}

func TestExpensesAndIncomeRows(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)
	expenses := l.Expenses("USD", "ARS")
	if len(expenses) != 3 {
		t.Fatalf("len(Expenses()) = %d, want 3", len(expenses))
	}
	fees := expenses[1]
	if fees.Category != "Bank" || fees.Subcategory != "Comisiones" {
		t.Errorf("fees category = %q/%q, want Bank/Comisiones", fees.Category, fees.Subcategory)
	}
	if !fees.Amounts["USD"].Equal(dec(10)) || !fees.Amounts["ARS"].Equal(dec(8000)) {
		t.Errorf("fees amounts = %v", fees.Amounts)
	}

	income := l.Income("USD")
	if len(income) != 3 {
		t.Fatalf("len(Income()) = %d, want 3", len(income))
	}
	if income[2].Origin != "Side" || !income[2].Amounts["USD"].Equal(dec(1000)) {
		t.Errorf("Income()[2] = %+v, want a positive Side income", income[2])
	}
}
