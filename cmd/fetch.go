package cmd

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	date   string
	dryRun bool
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "fetch the configured exchange rates and append them to the ledger"
}
func (*fetchCmd) Usage() string {
	return `finlit fetch [-d <date>] [-n]

  Reads the current rate of every price source of the configuration and
  appends it to the ledger as a price entry. Sources already priced on that
  day are skipped. Responses are cached on disk for the day.
  See 'finlit topic config'.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the price entries. Defaults to today.")
	f.BoolVar(&c.dryRun, "n", false, "Print the price entries instead of appending them.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		return fail("Error: %v", err)
	}
	if on.IsZero() {
		on = cfg.Today()
	}
	if len(cfg.PriceSources) == 0 {
		log.Println("No price source configured, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	path := LedgerPath(cfg)
	known, err := knownPrices(path)
	if err != nil {
		return fail("Error: %v", err)
	}

	client := finlit.DailyClient(cacheDir())
	var prices []finlit.Entry
	var errs []error
	for _, src := range cfg.PriceSources {
		if known[priceKey{on, src.Base, src.Quote}] {
			log.Printf("%s already priced on %s", src, on)
			continue
		}
		p, err := finlit.FetchPrice(client, src, on)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		log.Printf("fetched %s: %s", src, p.Rate)
		prices = append(prices, p)
	}

	if c.dryRun {
		for _, p := range prices {
			if err := finlit.EncodeEntry(stdout, p); err != nil {
				return fail("Error: %v", err)
			}
		}
	} else if len(prices) > 0 {
		if err := finlit.AppendEntries(path, prices...); err != nil {
			return fail("Error: %v", err)
		}
		log.Printf("appended %d prices to %s", len(prices), path)
	}

	if err := errors.Join(errs...); err != nil {
		return fail("Error fetching prices:\n%v", err)
	}
	return subcommands.ExitSuccess
}

type priceKey struct {
	on          date.Date
	base, quote string
}

// knownPrices returns the prices already in the ledger file. A missing file
// has none.
func knownPrices(path string) (map[priceKey]bool, error) {
	known := make(map[priceKey]bool)
	l, err := finlit.LoadLedger(path)
	if errors.Is(err, fs.ErrNotExist) {
		return known, nil
	}
	if err != nil {
		return nil, err
	}
	for p := range l.Prices() {
		known[priceKey{p.Date, p.Currency, p.Rate.Currency()}] = true
	}
	return known, nil
}

// cacheDir returns the directory of the http cache.
func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "finlit")
}
