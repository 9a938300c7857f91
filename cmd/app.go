// Package cmd implements the CLI application of the finance dashboard.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/francocalvo/finlit"
	"github.com/google/subcommands"
)

const (
	EnvLedgerFile = "FINLIT_LEDGER"
	EnvConfigFile = "FINLIT_CONFIG"
	EnvVerbose    = "FINLIT_VERBOSE"

	defaultLedgerFile = "ledger.jsonl"
	defaultConfigFile = "finlit.yaml"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = flag.String("ledger", "", "Path to the ledger file (JSONL). Defaults to $"+EnvLedgerFile+", the configured ledger, then "+defaultLedgerFile)
	configFile = flag.String("config", "", "Path to the configuration file (YAML or JSON). Defaults to $"+EnvConfigFile+", then "+defaultConfigFile+" when present")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
	Verbose    = flag.Bool("v", false, "Enable verbose logging")
)

// stdout receives the output of the commands.
var stdout io.Writer = os.Stdout

// dashboards lists the commands computing a dashboard.
var dashboards = []subcommands.Command{
	&networthCmd{},
	&projectionCmd{},
	&coastCmd{},
	&summaryCmd{},
	&ratiosCmd{},
	&allocationCmd{},
	&queryCmd{},
}

// tools lists the commands maintaining the files.
var tools = []subcommands.Command{
	&fetchCmd{},
	&fmtCmd{},
	&configCmd{},
	&publishCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range dashboards {
		c.Register(cmd, "dashboards")
	}
	for _, cmd := range tools {
		c.Register(cmd, "files")
	}
	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
}

// ConfigPath returns the configuration file to read, or "" to use the
// defaults.
func ConfigPath() string {
	if *configFile != "" {
		return *configFile
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// LedgerPath returns the ledger file to read.
func LedgerPath(cfg *finlit.Config) string {
	if *ledgerFile != "" {
		return *ledgerFile
	}
	if p := os.Getenv(EnvLedgerFile); p != "" {
		return p
	}
	if cfg != nil && cfg.Ledger != "" {
		return cfg.Ledger
	}
	return defaultLedgerFile
}

// LoadConfig reads the app configuration, the defaults when there is no file.
func LoadConfig() (*finlit.Config, error) {
	path := ConfigPath()
	if path == "" {
		return finlit.DefaultConfig(), nil
	}
	return finlit.LoadConfig(path)
}

// DecodeLedger loads the app ledger and logs its warnings.
func DecodeLedger(cfg *finlit.Config) (*finlit.Ledger, error) {
	path := LedgerPath(cfg)
	l, err := finlit.LoadLedger(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ledger %q does not exist, set -ledger or $%s", path, EnvLedgerFile)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range l.Errors() {
		log.Printf("warning: %v", w)
	}
	return l, nil
}

// openDashboard loads the configuration and the ledger.
func openDashboard() (*finlit.Dashboard, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	l, err := DecodeLedger(cfg)
	if err != nil {
		return nil, err
	}
	return finlit.NewDashboard(l, cfg, nil), nil
}

// printMarkdown renders markdown for the terminal, or prints it raw with
// -plain or when rendering fails.
func printMarkdown(md string) {
	if !*plain {
		out, err := renderTerminal(md)
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
		log.Printf("cannot render markdown, printing it raw: %v", err)
	}
	fmt.Fprint(stdout, md)
}

func renderTerminal(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// fail prints an error and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

// usage prints a usage error and returns the matching status.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
