package finlit

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/francocalvo/finlit/date"
	"github.com/shopspring/decimal"
)

// PriceSource describes where to read the rate of Base in Quote: a JSON
// document at URL, and the JSONPath expression selecting the rate in it.
type PriceSource struct {
	Base  string `yaml:"base" json:"base"`
	Quote string `yaml:"quote" json:"quote"`
	URL   string `yaml:"url" json:"url"`
	Path  string `yaml:"path" json:"path"`
}

func (s PriceSource) String() string { return s.Base + "/" + s.Quote }

// Validate checks that the source is complete.
func (s PriceSource) Validate() error {
	switch {
	case s.Base == "" || s.Quote == "":
		return errors.New("base and quote are required")
	case s.Base == s.Quote:
		return fmt.Errorf("%s cannot be quoted in itself", s.Base)
	case s.URL == "":
		return errors.New("url is required")
	case s.Path == "":
		return errors.New("path is required")
	}
	return nil
}

// ErrNoRate is returned when a source answers without a usable rate.
var ErrNoRate = errors.New("no usable rate")

// FetchPrice reads the current rate of a source and returns it as a price
// entry dated 'on'.
func FetchPrice(client *http.Client, src PriceSource, on date.Date) (Price, error) {
	var jobj any
	if err := jwget(client, src.URL, &jobj); err != nil {
		return Price{}, fmt.Errorf("error retrieving %s: %w", src, err)
	}
	rate, err := extractRate(jobj, src.Path)
	if err != nil {
		return Price{}, fmt.Errorf("error reading %s: %w", src, err)
	}
	return Price{Date: on, Currency: src.Base, Rate: A(rate, src.Quote)}, nil
}

// extractRate selects a rate in a decoded JSON document. Rates published as
// strings, possibly with a decimal comma, are accepted; zero is not.
func extractRate(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("path %q: %w", path, err)
	}
	// jsonpath returns either a single value or a list of matches; keep the first.
	if list, ok := jval.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, fmt.Errorf("%w: path %q matched nothing", ErrNoRate, path)
		}
		jval = list[0]
	}

	var rate decimal.Decimal
	switch v := jval.(type) {
	case float64:
		rate = decimal.NewFromFloat(v)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
		rate, err = decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid string %q: %v", ErrNoRate, v, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: %v is neither a number nor a string", ErrNoRate, jval)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s is not positive", ErrNoRate, rate)
	}
	return rate, nil
}
