package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/ledger"
	"github.com/cleared-dev/autogaap/internal/model"
	"github.com/cleared-dev/autogaap/internal/report"
)

func newCheckCommand(a *app) *cobra.Command {
	var (
		file     string
		warnOnly bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that debits equal credits and balances sit on their normal side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, _, err := a.loadEntries(cmd, file)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), report.PlaceholderText)
				return nil
			}

			opts, err := a.reportOptions()
			if err != nil {
				return err
			}
			if n := checkLedger(cmd.OutOrStdout(), entries, opts); n > 0 && !warnOnly {
				return fmt.Errorf("ledger check found %d problem(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "check this ledger file (.json or .csv) instead of the configured sources")
	cmd.Flags().BoolVar(&warnOnly, "warn-only", false, "report problems without failing")

	return cmd
}

// checkLedger prints the balance findings and entry issues for entries and
// returns how many of them are problems.
func checkLedger(w io.Writer, entries []model.JournalEntry, opts report.Options) int {
	summary := ledger.Summarize(entries)
	findings := ledger.Check(summary, opts.EffectiveTolerance())
	issues := ledger.ValidateEntries(entries)
	fmt.Fprint(w, report.CheckText(summary, findings, issues, opts.Formatter))
	return len(ledger.Problems(findings)) + len(issues)
}
