package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/config"
	"github.com/cleared-dev/autogaap/internal/store"
)

func newInitCommand(a *app) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new AutoGAAP project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, currency); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized AutoGAAP project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "reporting currency (ISO 4217 code)")

	return cmd
}

func runInit(dir, currency string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	cfg := config.Default()
	cfg.Report.Currency = currency
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir := filepath.Join(dir, cfg.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.DataDir, err)
	}

	// Write autogaap.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty fallback ledger document.
	ledgerDoc := "{\n  \"journalEntries\": []\n}\n"
	if err := os.WriteFile(filepath.Join(dir, cfg.Ledger.FallbackFile), []byte(ledgerDoc), 0o644); err != nil {
		return fmt.Errorf("writing fallback ledger: %w", err)
	}

	// Create the store so the schema exists before the first write.
	resolved := *cfg
	resolved.Resolve(dir)
	kv, err := store.Open(resolved.StorePath())
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	if err := kv.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	// Write .gitignore.
	gitignore := "*.db\n.env\n"
	if err := os.WriteFile(filepath.Join(dataDir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
