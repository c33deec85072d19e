// Package server exposes the ledger analysis over HTTP: the analysis page,
// a JSON summary API, journal entry submission and location logging.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cleared-dev/autogaap/internal/buildinfo"
	"github.com/cleared-dev/autogaap/internal/locationlog"
	"github.com/cleared-dev/autogaap/internal/model"
	"github.com/cleared-dev/autogaap/internal/report"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// Loader supplies the entries to analyze and names where they came from.
type Loader interface {
	LoadFrom(ctx context.Context) ([]model.JournalEntry, string)
}

// EntryStore persists submitted entries.
type EntryStore interface {
	Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error)
}

// Options configure a Server.
type Options struct {
	Addr      string
	Loader    Loader
	Entries   EntryStore        // nil disables POST /api/entries
	Locations *locationlog.Log // nil disables POST /log-location
	Report    report.Options
	Logger    *slog.Logger
}

// Server serves the AutoGAAP endpoints. Every request summarizes the ledger
// from scratch.
type Server struct {
	http.Server
	loader    Loader
	entries   EntryStore
	locations *locationlog.Log
	report    report.Options
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a server listening on opts.Addr.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		loader:    opts.Loader,
		entries:   opts.Entries,
		locations: opts.Locations,
		report:    opts.Report,
		logger:    logger,
		now:       time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("POST /api/entries", s.handleCreateEntry)
	mux.HandleFunc("POST /log-location", s.handleLogLocation)
	mux.HandleFunc("GET /healthz", handleHealth)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.withRequestLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.String()})
}
