package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cleared-dev/autogaap/internal/model"
)

// maxDocumentSize bounds how much of a remote ledger is read.
const maxDocumentSize = 16 << 20

// HTTP fetches a ledger document. The response is never served from a cache.
type HTTP struct {
	URL         string
	EntriesPath string
	Client      *http.Client
	Logger      *slog.Logger
}

// Name implements Source.
func (h *HTTP) Name() string { return "http:" + h.URL }

// Load implements Source. A non-2xx response is logged and holds no entries.
func (h *HTTP) Load(ctx context.Context) ([]model.JournalEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", h.URL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching ledger %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(ctx, "fallback ledger could not be loaded", "url", h.URL, "status", resp.Status)
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", h.URL, err)
	}
	entries, err := DecodeDocument(data, h.EntriesPath)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", h.URL, err)
	}
	return entries, nil
}
