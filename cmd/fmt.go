package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/francocalvo/finlit"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `finlit fmt [-o <file>]

  Validates and formats the ledger file. This command reads all entries,
  reports the validation warnings, sorts the entries by date, and writes them
  back in a canonical JSONL format. By default, it formats the ledger
  in-place.

Usage Examples:
# Writes to the default ledger file.
$ finlit fmt

# Writes the formatted ledger to stdout.
$ finlit fmt -o -
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, '-' for stdout. Defaults to the ledger file itself.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return fail("Error: %v", err)
	}
	path := LedgerPath(cfg)
	ledger, err := DecodeLedger(cfg)
	if err != nil {
		return fail("Error: could not load ledger: %v", err)
	}

	switch c.output {
	case "-":
		if err := finlit.EncodeLedger(stdout, ledger); err != nil {
			return fail("Error encoding ledger: %v", err)
		}
		return subcommands.ExitSuccess
	case "":
		c.output = path
	}

	fmt.Fprintf(os.Stderr, "Formatting ledger %q...\n", path)
	if err := finlit.SaveLedger(c.output, ledger); err != nil {
		return fail("Error saving formatted ledger %q: %v", c.output, err)
	}
	if n := len(ledger.Errors()); n > 0 {
		log.Printf("%d warnings left in the ledger", n)
	}
	fmt.Fprintf(os.Stderr, "Successfully formatted ledger to %s.\n", c.output)
	return subcommands.ExitSuccess
}
