// Package source loads journal entries from the places a ledger can live:
// the key-value store, a ledger document on disk or over HTTP, or a journal
// CSV.
package source

import (
	"context"
	"log/slog"

	"github.com/cleared-dev/autogaap/internal/model"
)

// Source supplies journal entries.
type Source interface {
	// Load returns the entries in ledger order. A source with nothing to
	// offer returns no entries and a nil error.
	Load(ctx context.Context) ([]model.JournalEntry, error)
	Name() string
}

// Fallback tries each source in order and returns the first non-empty
// result. Source errors are logged and skipped, so Load never fails.
type Fallback struct {
	Sources []Source
	Logger  *slog.Logger
}

// NewFallback creates a Fallback over sources.
func NewFallback(logger *slog.Logger, sources ...Source) *Fallback {
	return &Fallback{Sources: sources, Logger: logger}
}

// Name lists the chained sources.
func (f *Fallback) Name() string {
	name := "fallback("
	for i, s := range f.Sources {
		if i > 0 {
			name += ","
		}
		name += s.Name()
	}
	return name + ")"
}

// Load implements Source.
func (f *Fallback) Load(ctx context.Context) ([]model.JournalEntry, error) {
	entries, _ := f.LoadFrom(ctx)
	return entries, nil
}

// LoadFrom is Load that also reports which source supplied the entries. The
// name is empty when no source had any.
func (f *Fallback) LoadFrom(ctx context.Context) ([]model.JournalEntry, string) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, s := range f.Sources {
		if err := ctx.Err(); err != nil {
			logger.WarnContext(ctx, "ledger load cancelled", "error", err)
			return nil, ""
		}
		entries, err := s.Load(ctx)
		if err != nil {
			logger.WarnContext(ctx, "unable to load ledger entries", "source", s.Name(), "error", err)
			continue
		}
		if len(entries) > 0 {
			logger.DebugContext(ctx, "loaded ledger entries", "source", s.Name(), "count", len(entries))
			return entries, s.Name()
		}
		logger.DebugContext(ctx, "ledger source empty", "source", s.Name())
	}
	return nil, ""
}
