package finlit

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)

	if got, want := l.Options().OperatingCurrencies, []string{"USD", "ARS"}; !slices.Equal(got, want) {
		t.Errorf("OperatingCurrencies = %v, want %v", got, want)
	}
	txs := slices.Collect(l.Transactions())
	if len(txs) != 8 {
		t.Fatalf("len(Transactions()) = %d, want 8", len(txs))
	}
	if got, want := l.OldestTransactionDate(), day("2024-01-05"); got != want {
		t.Errorf("OldestTransactionDate() = %v, want %v", got, want)
	}
	if got, want := l.NewestTransactionDate(), day("2024-02-12"); got != want {
		t.Errorf("NewestTransactionDate() = %v, want %v", got, want)
	}
	buy := txs[3]
	if buy.Postings[0].Cost == nil || !buy.Postings[0].Cost.Equal(USD(400)) {
		t.Errorf("Buy VOO cost = %v, want 400 USD", buy.Postings[0].Cost)
	}
	if c, ok := l.Commodity("VOO"); !ok || c.AssetClass != "equity" {
		t.Errorf("Commodity(VOO) = %+v, %v", c, ok)
	}
}

func TestDecodeLedgerSortsByDate(t *testing.T) {
	l := decodeTestLedger(t, `{"command":"txn","date":"2024-03-01","narration":"second","postings":[]}
{"command":"txn","date":"2024-01-01","narration":"first","postings":[]}
{"command":"txn","date":"2024-03-01","narration":"third","postings":[]}
`)
	var got []string
	for tx := range l.Transactions() {
		got = append(got, tx.Narration)
	}
	if want := []string{"first", "second", "third"}; !slices.Equal(got, want) {
		t.Errorf("Transactions() order = %v, want %v", got, want)
	}
}

func TestDecodeLedgerErrors(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"command":"option","name":"title","value":"x"}
{"command":"txn","date":"2024-01-01",
`))
	var le *LoadError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Errorf("DecodeLedger(malformed) = %v, want a LoadError on line 2", err)
	}

	_, err = DecodeLedger(strings.NewReader(`{"command":"balance","date":"2024-01-01"}`))
	if err == nil {
		t.Errorf("DecodeLedger(unknown command) expected an error")
	}
}

func TestDecodeLedgerWarnings(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(`{"command":"txn","date":"2024-01-01","postings":[{"account":"Assets:Cash","amount":100,"currency":"USD"},{"account":"Income:Gift","amount":-90,"currency":"USD"}]}
{"command":"txn","date":"2024-01-02","postings":[{"account":"Wallet","amount":1,"currency":"USD"},{"account":"Income:Gift","amount":-1,"currency":"USD"}]}
{"command":"price","date":"2024-01-01","currency":"USD","amount":0,"quote":"ARS"}
`))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	warnings := l.Errors()
	if len(warnings) != 3 {
		t.Fatalf("Errors() = %v, want 3 warnings", warnings)
	}
	for i, want := range []error{ErrUnbalanced, ErrUnknownAccount, ErrInvalidPrice} {
		if !errors.Is(warnings[i], want) {
			t.Errorf("Errors()[%d] = %v, want %v", i, warnings[i], want)
		}
	}
	if n := len(slices.Collect(l.Transactions())); n != 2 {
		t.Errorf("invalid entries must be kept, got %d transactions", n)
	}
}

func TestEncodeLedgerRoundTrip(t *testing.T) {
	l := decodeTestLedger(t, sampleLedger)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	again := decodeTestLedger(t, buf.String())
	if l.Fingerprint() != again.Fingerprint() {
		t.Errorf("Fingerprint() changed across an encode/decode round trip")
	}

	var second bytes.Buffer
	if err := EncodeLedger(&second, again); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	if buf.String() != second.String() {
		t.Errorf("EncodeLedger() is not canonical:\n%s\n---\n%s", buf.String(), second.String())
	}
}
