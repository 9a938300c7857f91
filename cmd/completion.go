package cmd

import (
	"flag"

	"github.com/francocalvo/finlit/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the values of the flags shared by the commands.
var flagPredictors = map[string]complete.Predictor{
	"ledger":      predict.Files("*.jsonl"),
	"config":      predict.Files("*"),
	"frontmatter": predict.Files("*"),
	"init":        predict.Files("*"),
	"o":           predict.Files("*"),
	"p":           predict.Set{"day", "week", "month", "quarter", "year"},
	"format":      predict.Set{"md", "csv", "json"},
}

// predictFlags returns the predictors of every flag of a set.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the command line: every
// subcommand with its flags, and the global flags.
// Install it with COMP_INSTALL=1 finlit.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	commands := append(append([]subcommands.Command{}, dashboards...), tools...)
	commands = append(commands, &assistCmd{}, &topicCmd{})

	var names []string
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(fs)}
		names = append(names, c.Name())
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names)}

	topics, err := docs.GetAllTopics()
	if err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	root.Sub["query"].Args = predict.Something
	return root
}
