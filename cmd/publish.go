package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/francocalvo/finlit"
	"github.com/francocalvo/finlit/date"
	"github.com/francocalvo/finlit/renderer"
	"github.com/google/subcommands"
)

// page is a published dashboard.
type page struct {
	Name     string // file name, without extension
	Title    string
	Date     date.Date
	Markdown string
}

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "generates the pages of every dashboard" }

func (*publishCmd) Usage() string {
	return `publish [-o <dir>] [-frontmatter <file>]

  Generates every dashboard (summary, net worth, projection, Coast FIRE,
  expense ratios and allocation) and saves each one as a markdown page and
  an HTML page in the output directory.

  The front matter template, if any, is executed for each markdown page with
  its .Name, .Title and .Date.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Directory for the generated pages")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the page front matter")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			return fail("failed to parse front matter template: %v", err)
		}
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return fail("failed to create output directory: %v", err)
	}

	d, err := openDashboard()
	if err != nil {
		return fail("Error: %v", err)
	}
	pages, err := dashboardPages(d)
	if err != nil {
		return fail("failed to compute dashboards: %v", err)
	}

	for _, p := range pages {
		if err := writePage(c.outputDir, p, frontMatterTpl); err != nil {
			return fail("failed to write %s: %v", p.Name, err)
		}
		log.Printf("Generated %s pages", p.Name)
	}
	return subcommands.ExitSuccess
}

// dashboardPages renders every dashboard.
func dashboardPages(d *finlit.Dashboard) ([]page, error) {
	cur := d.Config.Currency
	var pages []page
	add := func(name, title, md string) {
		pages = append(pages, page{Name: name, Title: title, Date: d.Today, Markdown: md})
	}

	s, err := renderer.NewSummary(d)
	if err != nil {
		return nil, err
	}
	add("summary", "Summary", renderer.SummaryMarkdown(s))

	history, err := d.History(date.Date{}, d.Today, date.Monthly, "")
	if err != nil {
		return nil, err
	}
	add("networth", "Net worth", renderer.NetWorthMarkdown(history, cur, ""))

	if prefix := d.Config.InvestmentPrefix; prefix != "" {
		investments, err := d.History(date.Date{}, d.Today, date.Monthly, prefix)
		if err != nil {
			return nil, err
		}
		add("investments", "Investments", renderer.NetWorthMarkdown(investments, cur, prefix))
	}

	t, err := d.Projection()
	if err != nil {
		return nil, err
	}
	add("projection", "Projection", renderer.ProjectionMarkdown(t, cur))

	points, p, err := d.CoastFire()
	if err != nil {
		return nil, err
	}
	add("coast", "Coast FIRE", renderer.CoastMarkdown(points, finlit.CoastNumber(p), cur, d.Today))

	add("ratios", "Expense ratios", renderer.RatiosMarkdown(d.Ratios(), cur))

	a, err := d.Allocation(date.Date{})
	if err != nil {
		return nil, err
	}
	add("allocation", "Allocation", renderer.AllocationMarkdown(a))

	return pages, nil
}

// writePage writes the markdown and HTML files of a page.
func writePage(dir string, p page, frontMatterTpl *template.Template) error {
	md := p.Markdown
	if frontMatterTpl != nil {
		var fm bytes.Buffer
		if err := frontMatterTpl.Execute(&fm, p); err != nil {
			return fmt.Errorf("failed to render front matter: %w", err)
		}
		md = fm.String() + md
	}
	if err := os.WriteFile(filepath.Join(dir, p.Name+".md"), []byte(md), 0644); err != nil {
		return err
	}

	body, err := renderer.HTML(p.Markdown)
	if err != nil {
		return fmt.Errorf("failed to convert to HTML: %w", err)
	}
	doc := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n", html.EscapeString(p.Title), body)
	return os.WriteFile(filepath.Join(dir, p.Name+".html"), []byte(doc), 0644)
}
