package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/francocalvo/finlit/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the finlit guides" }
func (*topicCmd) Usage() string {
	return `finlit topic [-l] [<topic>...]

  Prints the guides on the ledger format, the configuration, the queries and
  the FIRE projections. Without a topic it prints the introduction, '*'
  prints every guide one after the other.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "List the available topics.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.GetAllTopics()
		if err != nil {
			return fail("Error listing topics: %v", err)
		}
		fmt.Fprintln(stdout, strings.Join(topics, "\n"))
		return subcommands.ExitSuccess
	}

	doc, err := docs.GetTopics(f.Args()...)
	if f.NArg() == 0 {
		doc, err = docs.GetTopic("readme")
	}
	if err != nil {
		return fail("Error: %v, see 'finlit topic -l'", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
