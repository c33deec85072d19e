package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/model"
)

// loadEntries reads the ledger from file when one is given, otherwise from
// the configured source chain. It also names the source that supplied the
// entries.
func (a *app) loadEntries(cmd *cobra.Command, file string) ([]model.JournalEntry, string, error) {
	ctx := cmd.Context()
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, "", fmt.Errorf("reading ledger: %w", err)
		}
		src := a.sourceForFile(file)
		entries, err := src.Load(ctx)
		if err != nil {
			return nil, "", err
		}
		return entries, src.Name(), nil
	}

	kv, err := a.openStore()
	if err != nil {
		return nil, "", err
	}
	defer kv.Close()

	entries, from := a.loader(kv).LoadFrom(ctx)
	return entries, from, nil
}
