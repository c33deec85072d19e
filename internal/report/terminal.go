package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// CheckText renders balance-check findings for the terminal, one per line,
// then any entry issues and the totals they were computed from.
func CheckText(s ledger.Summary, findings []ledger.Finding, issues []ledger.Issue, f Formatter) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("AutoGAAP ledger check"))
	b.WriteString("\n\n")

	for _, finding := range findings {
		mark := okStyle.Render("✓")
		if finding.Problem() {
			mark = warnStyle.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s\n", mark, Message(finding, f))
	}

	if len(issues) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Entry issues"))
		b.WriteString("\n")
		for _, is := range issues {
			fmt.Fprintf(&b, "%s %s\n", warnStyle.Render("✗"), is.Error())
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"%d entries, %d line items, debits %s, credits %s",
		s.EntryCount, s.LineItemCount, f.Format(s.TotalDebits), f.Format(s.TotalCredits),
	)))
	if s.MalformedEntries > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d malformed entries skipped", s.MalformedEntries)))
	}
	b.WriteString("\n")
	return b.String()
}
