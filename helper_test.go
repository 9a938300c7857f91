package finlit

import (
	"strings"
	"testing"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for tests to create dollars from a constant.
func USD(v float64) Amount { return A(v, "USD") }

// ARS is a helper for tests to create pesos from a constant.
func ARS(v float64) Amount { return A(v, "ARS") }

// dec is a helper for tests to create a decimal from a constant.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// day is a shorthand for date.MustParse.
func day(s string) date.Date { return date.MustParse(s) }

// decodeTestLedger decodes a JSONL ledger written inline, failing the test on
// any decoding or validation problem.
func decodeTestLedger(t *testing.T, jsonl string) *Ledger {
	t.Helper()
	l, err := DecodeLedger(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	for _, w := range l.Errors() {
		t.Errorf("DecodeLedger() unexpected warning: %v", w)
	}
	return l
}

// sampleLedger is a small bimonetary ledger: a salary paid in dollars, expenses
// in pesos, a credit card, and an index fund bought at cost.
const sampleLedger = `{"command":"option","name":"operating_currency","value":"USD"}
{"command":"option","name":"operating_currency","value":"ARS"}
{"command":"commodity","date":"2024-01-01","currency":"VOO","name":"Vanguard S&P 500","assetClass":"equity","portfolio":"retirement"}
{"command":"price","date":"2024-01-01","currency":"USD","amount":800,"quote":"ARS"}
{"command":"price","date":"2024-02-01","currency":"USD","amount":1000,"quote":"ARS"}
{"command":"price","date":"2024-01-01","currency":"VOO","amount":400,"quote":"USD"}
{"command":"price","date":"2024-02-15","currency":"VOO","amount":440,"quote":"USD"}
{"command":"txn","date":"2024-01-05","payee":"ACME","narration":"Salary","postings":[{"account":"Assets:Bank:Checking","amount":3000,"currency":"USD"},{"account":"Income:Salary:Job","amount":-3000,"currency":"USD"}]}
{"command":"txn","date":"2024-01-10","payee":"Super","narration":"Groceries","postings":[{"account":"Expenses:Food:Groceries","amount":80000,"currency":"ARS"},{"account":"Liabilities:CreditCard","amount":-80000,"currency":"ARS"}]}
{"command":"txn","date":"2024-01-12","payee":"Bank","narration":"Fees","postings":[{"account":"Expenses:Bank:Comisiones","amount":8000,"currency":"ARS"},{"account":"Liabilities:CreditCard","amount":-8000,"currency":"ARS"}]}
{"command":"txn","date":"2024-01-20","narration":"Buy VOO","postings":[{"account":"Assets:Inversiones:Broker","amount":2,"currency":"VOO","cost":{"amount":400,"currency":"USD"}},{"account":"Assets:Bank:Checking","amount":-800,"currency":"USD"}]}
{"command":"txn","date":"2024-02-05","payee":"ACME","narration":"Salary","postings":[{"account":"Assets:Bank:Checking","amount":3000,"currency":"USD"},{"account":"Income:Salary:Job","amount":-3000,"currency":"USD"}]}
{"command":"txn","date":"2024-02-06","payee":"Client","narration":"Freelance","postings":[{"account":"Assets:Bank:Checking","amount":1000,"currency":"USD"},{"account":"Income:Freelance:Side","amount":-1000,"currency":"USD"}]}
{"command":"txn","date":"2024-02-10","narration":"Pay card","postings":[{"account":"Liabilities:CreditCard","amount":88000,"currency":"ARS"},{"account":"Assets:Bank:Checking","amount":-88,"currency":"USD","price":{"amount":1000,"currency":"ARS"}}]}
{"command":"txn","date":"2024-02-12","payee":"Super","narration":"Groceries","postings":[{"account":"Expenses:Food:Groceries","amount":100000,"currency":"ARS"},{"account":"Liabilities:CreditCard","amount":-100000,"currency":"ARS"}]}
`
