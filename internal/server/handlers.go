package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cleared-dev/autogaap/internal/geo"
	"github.com/cleared-dev/autogaap/internal/ledger"
	"github.com/cleared-dev/autogaap/internal/locationlog"
	"github.com/cleared-dev/autogaap/internal/model"
	"github.com/cleared-dev/autogaap/internal/report"
)

// FindingJSON is the API view of a balance-check finding.
type FindingJSON struct {
	Kind        ledger.FindingKind `json:"kind"`
	AccountType string             `json:"accountType,omitempty"`
	Amount      json.Number        `json:"amount"`
	Message     string             `json:"message"`
}

// SummaryResponse is the body of GET /api/summary.
type SummaryResponse struct {
	Source          string              `json:"source"`
	Empty           bool                `json:"empty"`
	Message         string              `json:"message,omitempty"`
	Summary         report.SummaryJSON  `json:"summary"`
	Balanced        bool                `json:"balanced"`
	Findings        []FindingJSON       `json:"findings"`
	Recommendations []string            `json:"recommendations"`
	Chart           *report.ChartConfig `json:"chart,omitempty"`
}

// CreateEntryResponse is the body of POST /api/entries.
type CreateEntryResponse struct {
	Entry   model.JournalEntry `json:"entry"`
	Issues  []string           `json:"issues,omitempty"`
	Summary SummaryResponse    `json:"summary"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, from := s.loader.LoadFrom(r.Context())

	page := report.Page{Title: "AutoGAAP", Source: from}
	if len(entries) > 0 {
		summary := ledger.Summarize(entries)
		page.Summary = &summary
	}

	out, err := report.PageHTML(page, s.report)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "rendering analysis page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, s.summaryResponse(r))
}

func (s *Server) summaryResponse(r *http.Request) SummaryResponse {
	entries, from := s.loader.LoadFrom(r.Context())
	summary := ledger.Summarize(entries)
	tolerance := s.report.EffectiveTolerance()

	resp := SummaryResponse{
		Source:          from,
		Empty:           len(entries) == 0,
		Summary:         report.JSON(summary),
		Balanced:        summary.Balanced(tolerance),
		Findings:        []FindingJSON{},
		Recommendations: []string{},
	}
	if resp.Empty {
		resp.Message = report.PlaceholderText
		return resp
	}

	for _, f := range ledger.Check(summary, tolerance) {
		resp.Findings = append(resp.Findings, FindingJSON{
			Kind:        f.Kind,
			AccountType: string(f.AccountType),
			Amount:      json.Number(ledger.Round(f.Amount).StringFixed(ledger.Places)),
			Message:     report.Message(f, s.report.Formatter),
		})
	}
	resp.Recommendations = report.Recommendations(summary, tolerance, s.report.Formatter)
	chart := report.Chart(summary)
	resp.Chart = &chart
	return resp
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if s.entries == nil {
		http.Error(w, "entry submission is disabled", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		http.Error(w, "request body is not valid JSON", http.StatusBadRequest)
		return
	}
	var entry model.JournalEntry
	_ = json.Unmarshal(body, &entry)
	if entry.Malformed {
		http.Error(w, `journal entry must be an object with an "entries" list`, http.StatusBadRequest)
		return
	}
	if len(entry.LineItems) == 0 {
		http.Error(w, "journal entry has no line items", http.StatusBadRequest)
		return
	}

	saved, err := s.entries.Append(r.Context(), entry)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "saving journal entry", "error", err)
		http.Error(w, "failed to save entry", http.StatusInternalServerError)
		return
	}
	s.logger.InfoContext(r.Context(), "journal entry saved",
		"request_id", RequestID(r.Context()),
		"entry_id", saved.ID,
		"line_items", len(saved.LineItems))

	resp := CreateEntryResponse{Entry: saved, Summary: s.summaryResponse(r)}
	for _, issue := range ledger.ValidateEntry(saved) {
		resp.Issues = append(resp.Issues, issue.Error())
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogLocation(w http.ResponseWriter, r *http.Request) {
	if s.locations == nil {
		http.Error(w, "location logging is disabled", http.StatusNotFound)
		return
	}

	var loc geo.Location
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&loc); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "location must be a JSON object", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(loc.IP) == "" {
		loc.IP = clientIP(r)
	}

	if err := s.locations.Append(locationlog.FromLocation(loc, s.now())); err != nil {
		s.logger.ErrorContext(r.Context(), "logging location", "error", err)
		http.Error(w, "failed to log location", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
