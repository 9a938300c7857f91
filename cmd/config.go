package cmd

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type configCmd struct {
	init string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "display the effective configuration" }
func (*configCmd) Usage() string {
	return `finlit config [-init <file>]

  Prints the configuration in effect, the defaults completed with the
  configuration file. With -init, writes it to a new file instead, as YAML
  unless the file name ends in .json. See 'finlit topic config'.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.init, "init", "", "Write the configuration to this new file.")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return fail("Error: %v", err)
	}
	if c.init == "" {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fail("Error encoding configuration: %v", err)
		}
		if err := enc.Close(); err != nil {
			return fail("Error encoding configuration: %v", err)
		}
		return subcommands.ExitSuccess
	}

	if _, err := os.Stat(c.init); err == nil {
		return fail("Error: %q already exists", c.init)
	}
	if err := cfg.SaveToFile(c.init); err != nil {
		return fail("Error: %v", err)
	}
	log.Printf("configuration written to %s", c.init)
	return subcommands.ExitSuccess
}
