// Command finlit is the personal finance dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env may provide FINLIT_LEDGER, FINLIT_CONFIG and GEMINI_API_KEY.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: cannot load .env: %v", err)
	}

	cmd.Completion().Complete("finlit")

	commander := subcommands.NewCommander(flag.CommandLine, "finlit")
	cmd.Register(commander)

	flag.Parse()
	if *cmd.Verbose {
		finlit.SetVerbose(true)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if sub := flag.Arg(0); sub != "" && !isRegistered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
