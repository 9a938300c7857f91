package finlit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd reads an amount stored as two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) toAmount() Amount { return A(a.Amount, a.Currency) }

func newAmountCmd(a Amount) amountCmd { return amountCmd{Amount: a.value, Currency: a.cur} }

// optionalAmount converts an optional nested amount.
func optionalAmount(a *amountCmd) *Amount {
	if a == nil {
		return nil
	}
	v := a.toAmount()
	return &v
}

func optionalAmountCmd(a *Amount) *amountCmd {
	if a == nil {
		return nil
	}
	v := newAmountCmd(*a)
	return &v
}

type baseCmd struct {
	Command CommandType `json:"command"`
	Date    *date.Date  `json:"date,omitempty"`
}

type optionCmd struct {
	Command CommandType `json:"command"`
	Name    string      `json:"name"`
	Value   string      `json:"value"`
}

type commodityCmd struct {
	baseCmd
	Currency   string            `json:"currency"`
	Name       string            `json:"name,omitempty"`
	AssetClass string            `json:"assetClass,omitempty"`
	Portfolio  string            `json:"portfolio,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

type priceCmd struct {
	baseCmd
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Quote    string          `json:"quote"`
}

type postingCmd struct {
	Account string `json:"account"`
	amountCmd
	Cost  *amountCmd `json:"cost,omitempty"`
	Price *amountCmd `json:"price,omitempty"`
}

type txnCmd struct {
	baseCmd
	Payee     string       `json:"payee,omitempty"`
	Narration string       `json:"narration,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	Postings  []postingCmd `json:"postings"`
}

// errMissingDate is reported for dated entries without a date.
var errMissingDate = errors.New("missing date")

func (b baseCmd) when() (date.Date, error) {
	if b.Date == nil {
		return date.Date{}, errMissingDate
	}
	return *b.Date, nil
}

// decodeEntry decodes a single JSONL line.
func decodeEntry(line []byte) (Entry, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command: %w", err)
	}

	switch identifier.Command {
	case CmdOption:
		var temp optionCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Option{Name: temp.Name, Value: temp.Value}, nil
	case CmdCommodity:
		var temp commodityCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		on, err := temp.when()
		if err != nil {
			return nil, err
		}
		return Commodity{
			Date:       on,
			Currency:   temp.Currency,
			Name:       temp.Name,
			AssetClass: temp.AssetClass,
			Portfolio:  temp.Portfolio,
			Meta:       temp.Meta,
		}, nil
	case CmdPrice:
		var temp priceCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		on, err := temp.when()
		if err != nil {
			return nil, err
		}
		return Price{Date: on, Currency: temp.Currency, Rate: A(temp.Amount, temp.Quote)}, nil
	case CmdTransaction:
		var temp txnCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		on, err := temp.when()
		if err != nil {
			return nil, err
		}
		tx := Transaction{
			Date:      on,
			Payee:     temp.Payee,
			Narration: temp.Narration,
			Tags:      temp.Tags,
			Postings:  make([]Posting, 0, len(temp.Postings)),
		}
		for _, p := range temp.Postings {
			tx.Postings = append(tx.Postings, Posting{
				Account: p.Account,
				Units:   p.toAmount(),
				Cost:    optionalAmount(p.Cost),
				Price:   optionalAmount(p.Price),
			})
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unknown command: %q", identifier.Command)
	}
}

// DecodeLedger reads a JSONL stream into a Ledger.
//
// A line that cannot be decoded aborts with a *LoadError. Entries that decode
// but fail validation are kept, and the problems are available from
// Ledger.Errors.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var entries []Entry
	lines := make(map[int]int) // entry index to line number
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		e, err := decodeEntry(line)
		if err != nil {
			return nil, &LoadError{Line: n, Err: err}
		}
		lines[len(entries)] = n
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("error reading from input: %w", err)}
	}

	// Options come first: they rename the account roots used by validation.
	for _, e := range entries {
		if o, ok := e.(Option); ok {
			ledger.Append(o)
		}
	}
	var dated []Entry
	for i, e := range entries {
		if _, ok := e.(Option); ok {
			continue
		}
		if err := validateEntry(e, ledger.options.AccountTypes); err != nil {
			ledger.warnings = append(ledger.warnings, &LoadError{Line: lines[i], Err: err})
		}
		dated = append(dated, e)
	}
	ledger.Append(dated...)
	return ledger, nil
}

// EncodeEntry writes a single entry as one JSONL line.
func EncodeEntry(w io.Writer, e Entry) error {
	var v any
	switch e := e.(type) {
	case Option:
		v = optionCmd{Command: CmdOption, Name: e.Name, Value: e.Value}
	case Commodity:
		v = commodityCmd{
			baseCmd:    baseCmd{Command: CmdCommodity, Date: &e.Date},
			Currency:   e.Currency,
			Name:       e.Name,
			AssetClass: e.AssetClass,
			Portfolio:  e.Portfolio,
			Meta:       e.Meta,
		}
	case Price:
		v = priceCmd{
			baseCmd:  baseCmd{Command: CmdPrice, Date: &e.Date},
			Currency: e.Currency,
			Amount:   e.Rate.value,
			Quote:    e.Rate.cur,
		}
	case Transaction:
		temp := txnCmd{
			baseCmd:   baseCmd{Command: CmdTransaction, Date: &e.Date},
			Payee:     e.Payee,
			Narration: e.Narration,
			Tags:      e.Tags,
			Postings:  make([]postingCmd, 0, len(e.Postings)),
		}
		for _, p := range e.Postings {
			temp.Postings = append(temp.Postings, postingCmd{
				Account:   p.Account,
				amountCmd: newAmountCmd(p.Units),
				Cost:      optionalAmountCmd(p.Cost),
				Price:     optionalAmountCmd(p.Price),
			})
		}
		v = temp
	default:
		return fmt.Errorf("cannot encode entry of type %T", e)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s entry: %w", e.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical order: options, then dated
// entries chronologically.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for e := range ledger.Entries() {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}
