package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/ledger"
	"github.com/cleared-dev/autogaap/internal/model"
	"github.com/cleared-dev/autogaap/internal/report"
)

// Output formats for summarize.
const (
	formatMarkdown = "markdown"
	formatPretty   = "pretty"
	formatHTML     = "html"
	formatPage     = "page"
	formatJSON     = "json"
)

func newSummarizeCommand(a *app) *cobra.Command {
	var (
		format string
		file   string
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the ledger by account type and account",
		Long: `Summarize loads journal entries from the store, falling back to the CSV
journal, the fallback ledger file and the fallback URL, and prints the
totals in the chosen format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, from, err := a.loadEntries(cmd, file)
			if err != nil {
				return err
			}
			a.logger.Debug("summarizing ledger", "source", from, "entries", len(entries))

			opts, err := a.reportOptions()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			return writeSummary(out, format, entries, from, opts, width)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatMarkdown, "output format (markdown, pretty, html, page, json)")
	cmd.Flags().StringVar(&file, "file", "", "summarize this ledger file (.json or .csv) instead of the configured sources")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&width, "width", 100, "wrap width for pretty output")

	return cmd
}

func writeSummary(w io.Writer, format string, entries []model.JournalEntry, from string, opts report.Options, width int) error {
	empty := len(entries) == 0
	summary := ledger.Summarize(entries)

	var out string
	switch strings.ToLower(format) {
	case formatMarkdown, formatPretty:
		out = report.PlaceholderMarkdown()
		if !empty {
			out = report.Markdown(summary, opts)
		}
		if strings.EqualFold(format, formatPretty) {
			rendered, err := report.RenderTerminal(out, width)
			if err != nil {
				return err
			}
			out = rendered
		}
	case formatHTML:
		out = report.PlaceholderHTML()
		if !empty {
			html, err := report.HTML(summary, opts)
			if err != nil {
				return err
			}
			recs, err := report.RecommendationsHTML(report.Recommendations(summary, opts.EffectiveTolerance(), opts.Formatter))
			if err != nil {
				return err
			}
			out = html + recs
		}
	case formatPage:
		page := report.Page{Source: from}
		if !empty {
			page.Summary = &summary
		}
		html, err := report.PageHTML(page, opts)
		if err != nil {
			return err
		}
		out = html
	case formatJSON:
		data, err := json.MarshalIndent(report.JSON(summary), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unknown format %q (want markdown, pretty, html, page or json)", format)
	}

	_, err := io.WriteString(w, out)
	return err
}
