package agent

import (
	"context"
	"fmt"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
	"github.com/francocalvo/finlit/docs"
	"github.com/francocalvo/finlit/renderer"
	"google.golang.org/genai"
)

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	// Run computes the markdown output of the function.
	Run func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	out, err := f.Run(ctx, args)
	if err != nil {
		return errorResponse(id, f.Decl.Name, err)
	}
	return outputResponse(id, f.Decl.Name, out)
}

// Workspace gives the tools access to the user's ledger and configuration.
// The ledger is reloaded whenever the file changes.
type Workspace struct {
	Cache  *finlit.Cache
	Config *finlit.Config
	Ledger string // path of the ledger file
}

func (ws *Workspace) dashboard() (*finlit.Dashboard, error) {
	l, err := ws.Cache.Ledger(ws.Ledger)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	return finlit.NewDashboard(l, ws.Config, ws.Cache), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// dateArg reads an optional date argument.
func dateArg(args map[string]any, name string) (date.Date, error) {
	v, ok := args[name]
	if !ok {
		return date.Date{}, nil
	}
	s, ok := v.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	if s == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("argument %q must be a valid date, got %q. Below is the doc about dates\n\n%s", name, s, must(docs.GetTopic("dates")))
	}
	return d, nil
}

// stringArg reads an optional string argument.
func stringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func dateSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description + " Written YYYY-MM-DD."}
}

var markdownResponse = &genai.Schema{Type: genai.TypeString, Description: "A markdown report."}

// Tools returns the functions reading the workspace.
func Tools(ws *Workspace) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "NetWorth",
				Description: "NetWorth values the balance sheet on every sample date: net worth, assets and liabilities in the reporting currency.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start":  dateSchema("First sample. Defaults to the month of the first transaction."),
						"end":    dateSchema("Last sample. Defaults to today."),
						"period": {Type: genai.TypeString, Description: "Sampling period: day, week, month, quarter or year. Defaults to month.", Enum: []string{"day", "week", "month", "quarter", "year"}},
						"prefix": {Type: genai.TypeString, Description: "Restrict to the accounts under this prefix, like Assets:Inversiones."},
					},
				},
				Response: markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				start, err := dateArg(args, "start")
				if err != nil {
					return "", err
				}
				end, err := dateArg(args, "end")
				if err != nil {
					return "", err
				}
				period, err := stringArg(args, "period", "month")
				if err != nil {
					return "", err
				}
				p, err := date.ParsePeriod(period)
				if err != nil {
					return "", err
				}
				prefix, err := stringArg(args, "prefix", "")
				if err != nil {
					return "", err
				}
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				s, err := d.History(start, end, p, prefix)
				if err != nil {
					return "", err
				}
				return renderer.NetWorthMarkdown(s, ws.Config.Currency, prefix), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Summary",
				Description: "Summary reports the trailing average income and expenses, the savings rate, the net worth, the progress toward financial independence and this month's spending.",
				Response:    markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				s, err := renderer.NewSummary(d)
				if err != nil {
					return "", err
				}
				return renderer.SummaryMarkdown(s), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Projection",
				Description: "Projection projects the net worth month by month under four contribution scenarios (conservative, probable, optimal, possible), after the actual net worth of past months.\n\n" + must(docs.GetTopic("fire")),
				Response:    markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				t, err := d.Projection()
				if err != nil {
					return "", err
				}
				return renderer.ProjectionMarkdown(t, ws.Config.Currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "CoastFire",
				Description: "CoastFire reports the Coast FIRE number and its curve: the amount that, invested and left alone, grows into the retirement goal.",
				Response:    markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				points, p, err := d.CoastFire()
				if err != nil {
					return "", err
				}
				return renderer.CoastMarkdown(points, finlit.CoastNumber(p), ws.Config.Currency, d.Today), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "ExpenseRatios",
				Description: "ExpenseRatios reports, for each month with income, the share of income spent, gross and net of excluded expenses.",
				Response:    markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				return renderer.RatiosMarkdown(d.Ratios(), ws.Config.Currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Allocation",
				Description: "Allocation lists the investment holdings with their value and weight, and the totals per asset class.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": dateSchema("Day of the allocation. Defaults to today."),
					},
				},
				Response: markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				on, err := dateArg(args, "date")
				if err != nil {
					return "", err
				}
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				a, err := d.Allocation(on)
				if err != nil {
					return "", err
				}
				return renderer.AllocationMarkdown(a), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Query",
				Description: "Query sums postings of the ledger with an aggregate query.\n\n" + must(docs.GetTopic("query")),
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "The aggregate query."},
					},
					Required: []string{"query"},
				},
				Response: markdownResponse,
			},
			Run: func(ctx context.Context, args map[string]any) (string, error) {
				s, err := stringArg(args, "query", "")
				if err != nil {
					return "", err
				}
				q, err := finlit.ParseQuery(s)
				if err != nil {
					return "", err
				}
				d, err := ws.dashboard()
				if err != nil {
					return "", err
				}
				return renderer.AggregateMarkdown(s, d.Ledger.Sum(q)), nil
			},
		},
	}
}
