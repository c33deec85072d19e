package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// Markdown renders the summary, the largest account balances and the
// recommendations as a Markdown document.
func Markdown(s ledger.Summary, opts Options) string {
	v := newSummaryView(s, opts)
	var b strings.Builder

	b.WriteString("# AutoGAAP Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	for _, k := range v.KPIs {
		fmt.Fprintf(&b, "| %s | %s |\n", cell(k.Label), cell(k.Value))
	}
	fmt.Fprintf(&b, "\n**Status:** %s\n\n", StatusText(s, opts))

	b.WriteString("## Totals by Account Type\n\n")
	b.WriteString("| Account Type | Total Debits | Total Credits | Net (Debit - Credit) |\n|---|---:|---:|---:|\n")
	for _, r := range v.Types {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(r.Label), cell(r.Debit), cell(r.Credit), cell(r.Net))
	}

	if len(v.Accounts) > 0 {
		b.WriteString("\n## Largest Account Balances\n\n")
		b.WriteString("| Account | Type | Debit | Credit | Net (Debit - Credit) |\n|---|---|---:|---:|---:|\n")
		for _, a := range v.Accounts {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", cell(a.Name), cell(a.Type), cell(a.Debit), cell(a.Credit), cell(a.Net))
		}
	}

	b.WriteString("\n## AutoGAAP Highlights\n\n")
	for _, m := range Recommendations(s, opts.EffectiveTolerance(), opts.Formatter) {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	return b.String()
}

// PlaceholderMarkdown is the Markdown counterpart of PlaceholderHTML.
func PlaceholderMarkdown() string {
	return "# AutoGAAP Summary\n\n_" + PlaceholderText + "_\n"
}

// cell makes text safe inside a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderTerminal renders Markdown for display in a terminal, wrapped at
// width columns.
func RenderTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
