package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `finlit assist [<prompt>...]

  Start an interactive session with the AI assistant. The assistant reads the
  dashboards of the ledger and can search the web for economic context.
  The Gemini API key is read from $GEMINI_API_KEY, possibly set in .env.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fail("Error: %v", err)
	}
	ws := &agent.Workspace{Cache: finlit.NewCache(), Config: cfg, Ledger: LedgerPath(cfg)}
	if _, err := ws.Cache.Ledger(ws.Ledger); err != nil {
		return fail("Error loading ledger: %v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewEconomist(), agent.NewAnalyst(ws))
	a.Print = func(_ io.Writer, md string) { printMarkdown(md) }
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail("Agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}
