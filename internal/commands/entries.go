package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/ledger"
	"github.com/cleared-dev/autogaap/internal/model"
	"github.com/cleared-dev/autogaap/internal/source"
)

func newEntriesCommand(a *app) *cobra.Command {
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage the journal entries kept in the store",
	}
	entriesCmd.AddCommand(
		newEntriesListCommand(a),
		newEntriesAddCommand(a),
		newEntriesImportCommand(a),
		newEntriesExportCommand(a),
	)
	return entriesCmd
}

func newEntriesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer kv.Close()

			entries, err := a.entryStore(kv).Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No journal entries stored.")
				return nil
			}
			opts, err := a.reportOptions()
			if err != nil {
				return err
			}
			return writeEntryTable(cmd.OutOrStdout(), entries, opts.Formatter.Format)
		},
	}
}

func writeEntryTable(out io.Writer, entries []model.JournalEntry, money func(decimal.Decimal) string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Date"),
		headerStyle.Render("Description"),
		headerStyle.Render("Lines"),
		headerStyle.Render("Debits"),
		headerStyle.Render("Credits")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		if e.Malformed {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\t-\n", e.ID, e.Date, "(malformed)"); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			continue
		}
		debits, credits := decimal.Zero, decimal.Zero
		for _, li := range e.LineItems {
			debits = debits.Add(li.Debit)
			credits = credits.Add(li.Credit)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			e.ID, e.Date, e.Description, len(e.LineItems), money(debits), money(credits)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func newEntriesAddCommand(a *app) *cobra.Command {
	var (
		entryID     string
		date        string
		description string
		lines       []string
		rawJSON     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry to the store",
		Long: `Add a journal entry. Each --line is "account name,account type,debit,credit"
(quote names containing commas). Alternatively pass the whole entry as JSON
with --json; "-" reads it from stdin.`,
		Example: `  autogaap entries add --date 2025-01-05 --description "Owner investment" \
    --line "Cash,asset,1000,0" --line "Owner Capital,equity,0,1000"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry model.JournalEntry
			var err error
			if rawJSON != "" {
				entry, err = parseEntryJSON(rawJSON, cmd.InOrStdin())
			} else {
				entry, err = parseEntryLines(lines)
			}
			if err != nil {
				return err
			}
			if entryID != "" {
				entry.ID = entryID
			}
			if date != "" {
				entry.Date = date
			}
			if description != "" {
				entry.Description = description
			}

			for _, issue := range ledger.ValidateEntry(entry) {
				a.logger.Warn("journal entry issue", "issue", issue.Error())
			}

			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer kv.Close()

			saved, err := a.entryStore(kv).Append(cmd.Context(), entry)
			if err != nil {
				return fmt.Errorf("saving entry: %w", err)
			}
			a.logger.Info("journal entry saved", "entry_id", saved.ID, "line_items", len(saved.LineItems))
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s with %d line items\n", saved.ID, len(saved.LineItems))
			return nil
		},
	}

	cmd.Flags().StringVar(&entryID, "id", "", "entry id (default: next id in the entry's month)")
	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "entry description")
	cmd.Flags().StringArrayVar(&lines, "line", nil, `line item as "account name,account type,debit,credit"`)
	cmd.Flags().StringVar(&rawJSON, "json", "", `entry as JSON ("-" for stdin)`)
	cmd.MarkFlagsMutuallyExclusive("line", "json")
	cmd.MarkFlagsOneRequired("line", "json")

	return cmd
}

func parseEntryJSON(raw string, stdin io.Reader) (model.JournalEntry, error) {
	data := []byte(raw)
	if raw == "-" {
		var err error
		if data, err = io.ReadAll(stdin); err != nil {
			return model.JournalEntry{}, fmt.Errorf("reading stdin: %w", err)
		}
	}
	if !json.Valid(data) {
		return model.JournalEntry{}, fmt.Errorf("entry is not valid JSON")
	}
	var entry model.JournalEntry
	_ = json.Unmarshal(data, &entry)
	if entry.Malformed {
		return model.JournalEntry{}, fmt.Errorf(`entry must be an object with an "entries" list`)
	}
	if len(entry.LineItems) == 0 {
		return model.JournalEntry{}, fmt.Errorf("entry has no line items")
	}
	return entry, nil
}

func parseEntryLines(lines []string) (model.JournalEntry, error) {
	entry := model.JournalEntry{LineItems: make([]model.LineItem, 0, len(lines))}
	for i, line := range lines {
		r := csv.NewReader(strings.NewReader(line))
		r.TrimLeadingSpace = true
		fields, err := r.Read()
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		if len(fields) != 4 {
			return model.JournalEntry{}, fmt.Errorf("line %d: want 4 fields (name,type,debit,credit), got %d", i+1, len(fields))
		}
		li := model.LineItem{AccountName: fields[0], AccountType: fields[1]}
		var ok bool
		if li.Debit, ok = parseCLIAmount(fields[2]); !ok {
			return model.JournalEntry{}, fmt.Errorf("line %d: invalid debit %q", i+1, fields[2])
		}
		if li.Credit, ok = parseCLIAmount(fields[3]); !ok {
			return model.JournalEntry{}, fmt.Errorf("line %d: invalid credit %q", i+1, fields[3])
		}
		entry.LineItems = append(entry.LineItems, li)
	}
	return entry, nil
}

// parseCLIAmount accepts a blank cell as zero.
func parseCLIAmount(s string) (decimal.Decimal, bool) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, true
	}
	return model.ParseAmountString(s)
}

func newEntriesImportCommand(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a ledger document (.json) or journal CSV (.csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, from, err := a.loadEntries(cmd, args[0])
			if err != nil {
				return err
			}

			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer kv.Close()
			st := a.entryStore(kv)

			if replace {
				if err := st.Replace(cmd.Context(), nil); err != nil {
					return fmt.Errorf("clearing store: %w", err)
				}
			}

			imported, skipped := 0, 0
			for _, e := range entries {
				if e.Malformed {
					skipped++
					continue
				}
				if _, err := st.Append(cmd.Context(), e); err != nil {
					return fmt.Errorf("importing entry %d: %w", imported+skipped+1, err)
				}
				imported++
			}
			a.logger.Info("entries imported", "source", from, "imported", imported, "skipped", skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s", imported, args[0])
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d malformed skipped)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the stored entries instead of appending")

	return cmd
}

func newEntriesExportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored entries as a ledger document or journal CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer kv.Close()

			entries, err := a.entryStore(kv).Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if entries == nil {
					entries = []model.JournalEntry{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"journalEntries": entries})
			case "csv":
				return source.WriteCSV(out, entries)
			default:
				return fmt.Errorf("unknown format %q (want json or csv)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, csv)")

	return cmd
}
