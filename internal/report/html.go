package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// PlaceholderText is shown when there are no journal entries to analyze.
const PlaceholderText = "No journal entries available yet. Add an entry to generate AutoGAAP insights."

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// HTML renders the summary panel: KPIs, balance status, totals by type and
// the largest account balances. Every value is HTML-escaped.
func HTML(s ledger.Summary, opts Options) (string, error) {
	return render("summary.html.tmpl", newSummaryView(s, opts))
}

// RecommendationsHTML renders the highlights list.
func RecommendationsHTML(messages []string) (string, error) {
	return render("recommendations.html.tmpl", messages)
}

// PlaceholderHTML renders the notice shown instead of a summary when the
// ledger is empty.
func PlaceholderHTML() string {
	out, err := render("placeholder.html.tmpl", PlaceholderText)
	if err != nil {
		// The template is static; this only fails if it is broken.
		panic(err)
	}
	return out
}

// Page is a complete analysis document.
type Page struct {
	Title  string
	Source string // name of the source that supplied the entries
	// Summary is nil when there were no entries.
	Summary *ledger.Summary
}

type pageView struct {
	Title           string
	Source          string
	Summary         template.HTML
	Recommendations template.HTML
	Chart           *ChartConfig
}

// PageHTML renders p as a standalone HTML document with the summary, the
// recommendations and a Chart.js bar chart of net balance by type.
func PageHTML(p Page, opts Options) (string, error) {
	v := pageView{Title: p.Title, Source: p.Source}
	if v.Title == "" {
		v.Title = "AutoGAAP"
	}

	if p.Summary == nil {
		v.Summary = template.HTML(PlaceholderHTML())
		return render("page.html.tmpl", v)
	}

	summary, err := HTML(*p.Summary, opts)
	if err != nil {
		return "", err
	}
	recs, err := RecommendationsHTML(Recommendations(*p.Summary, opts.EffectiveTolerance(), opts.Formatter))
	if err != nil {
		return "", err
	}
	chart := Chart(*p.Summary)
	v.Summary = template.HTML(summary)
	v.Recommendations = template.HTML(recs)
	v.Chart = &chart
	return render("page.html.tmpl", v)
}
