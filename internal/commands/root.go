// Package commands implements the autogaap command line.
package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/autogaap/internal/buildinfo"
	"github.com/cleared-dev/autogaap/internal/config"
	"github.com/cleared-dev/autogaap/internal/logging"
	"github.com/cleared-dev/autogaap/internal/report"
	"github.com/cleared-dev/autogaap/internal/source"
	"github.com/cleared-dev/autogaap/internal/store"
)

// app carries the state shared by every command: global flags and the
// configuration resolved from them.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "autogaap",
		Short:   "Summarize journal entries into GAAP-style totals",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "config file")
	flags.StringVar(&a.envFile, "env-file", "", ".env file to load (default: ./.env if present)")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newSummarizeCommand(a),
		newCheckCommand(a),
		newEntriesCommand(a),
		newServeCommand(a),
		newLocateCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := logging.Setup(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	if err := config.LoadEnv(a.envFile); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	base, err := filepath.Abs(filepath.Dir(a.configPath))
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.Resolve(base)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	logger.Debug("configuration loaded", "config", a.configPath, "data_dir", cfg.DataDir)
	return nil
}

func (a *app) openStore() (*store.KV, error) {
	kv, err := store.Open(a.cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return kv, nil
}

// entryStore returns the store-backed entry source.
func (a *app) entryStore(kv *store.KV) *source.Store {
	return source.NewStore(kv, a.cfg.Ledger.StorageKey)
}

// loader chains the configured sources: the store first, then the CSV
// journal, the fallback file and the fallback URL.
func (a *app) loader(kv *store.KV) *source.Fallback {
	lc := a.cfg.Ledger
	sources := []source.Source{a.entryStore(kv)}
	if lc.CSVPath != "" {
		sources = append(sources, &source.CSV{Path: lc.CSVPath})
	}
	if lc.FallbackFile != "" {
		sources = append(sources, &source.File{Path: lc.FallbackFile, EntriesPath: lc.EntriesPath})
	}
	if lc.FallbackURL != "" {
		sources = append(sources, &source.HTTP{URL: lc.FallbackURL, EntriesPath: lc.EntriesPath, Logger: a.logger})
	}
	return source.NewFallback(a.logger, sources...)
}

func (a *app) reportOptions() (report.Options, error) {
	f, err := report.NewFormatter(a.cfg.Report.Currency)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Formatter:   f,
		Tolerance:   a.cfg.ToleranceDecimal(),
		TopAccounts: a.cfg.Report.TopAccounts,
	}, nil
}

// sourceForFile picks a source for a ledger file by extension.
func (a *app) sourceForFile(path string) source.Source {
	if filepath.Ext(path) == ".csv" {
		return &source.CSV{Path: path}
	}
	return &source.File{Path: path, EntriesPath: a.cfg.Ledger.EntriesPath}
}
