// Package renderer turns dashboard data into markdown, HTML and CSV.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/francocalvo/finlit"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money":   money,
	"percent": percent,
	"number":  number,
	"title":   scenarioTitle,
}

// money formats a decimal or a float in a currency.
func money(v any, cur string) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return finlit.A(x, cur).String()
	case float64:
		return finlit.A(x, cur).String()
	default:
		return fmt.Sprint(v)
	}
}

// percent formats a value already expressed in percent.
func percent(v any) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.StringFixed(2) + "%"
	case float64:
		return fmt.Sprintf("%.2f%%", x)
	default:
		return fmt.Sprint(v)
	}
}

func number(v decimal.Decimal) string { return v.String() }

// scenarioTitle turns "probable_value" into "Probable".
func scenarioTitle(s finlit.Scenario) string {
	name := strings.TrimSuffix(string(s), "_value")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name results in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown page to an HTML fragment. Tables are supported.
func HTML(md string) (string, error) {
	var b bytes.Buffer
	if err := markdown.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
