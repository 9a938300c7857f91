package cmd

import (
	"encoding/json"
	"io"

	"github.com/francocalvo/finlit/date"
	"github.com/google/subcommands"
)

// output prints a dashboard in the requested format: md, csv or json.
// A command without a csv writer does not support csv.
func output(format string, md func() string, writeCSV func(io.Writer) error, v any) subcommands.ExitStatus {
	switch format {
	case "", "md":
		printMarkdown(md())
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fail("Error encoding json: %v", err)
		}
	case "csv":
		if writeCSV == nil {
			return usage("Format %q is not supported by this command", format)
		}
		if err := writeCSV(stdout); err != nil {
			return fail("Error writing csv: %v", err)
		}
	default:
		return usage("Unknown format %q, want md, csv or json", format)
	}
	return subcommands.ExitSuccess
}

// parseDate parses an optional date flag.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}
