package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cleared-dev/autogaap/internal/id"
	"github.com/cleared-dev/autogaap/internal/model"
)

// DefaultStorageKey is the key journal entries are kept under.
const DefaultStorageKey = "journalEntries"

// KeyValue is the subset of the key-value store the ledger needs.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Update(ctx context.Context, key string, fn func(value string, ok bool) (string, error)) error
}

// Store loads entries saved as a JSON array under a single key.
type Store struct {
	KV  KeyValue
	Key string
}

// NewStore creates a Store source reading key from kv.
func NewStore(kv KeyValue, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{KV: kv, Key: key}
}

// Name implements Source.
func (s *Store) Name() string { return "store:" + s.Key }

// Load implements Source. An absent or blank value, or a value that is not a
// JSON array, holds no entries; invalid JSON is an error.
func (s *Store) Load(ctx context.Context) ([]model.JournalEntry, error) {
	raw, ok, err := s.KV.Get(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	entries, _, err := DecodeArray([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Key, err)
	}
	return entries, nil
}

// Append adds e to the end of the stored entries. A stored value that is
// missing, blank or valid JSON but not an array is replaced by a new array;
// invalid JSON is an error and is left untouched. An entry without
// an id is given the next id in its month.
func (s *Store) Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	err := s.KV.Update(ctx, s.Key, func(raw string, ok bool) (string, error) {
		var existing []json.RawMessage
		if ok && strings.TrimSpace(raw) != "" {
			if !json.Valid([]byte(raw)) {
				return "", fmt.Errorf("reading %s: invalid JSON", s.Key)
			}
			// Entries are kept verbatim so tolerant fields survive a rewrite.
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				existing = nil
			}
		}
		if strings.TrimSpace(e.ID) == "" {
			e.ID = id.Next(e.Date, storedIDs(existing))
		}
		next, err := json.Marshal(e)
		if err != nil {
			return "", fmt.Errorf("encoding entry: %w", err)
		}
		existing = append(existing, next)
		out, err := json.Marshal(existing)
		if err != nil {
			return "", fmt.Errorf("encoding entries: %w", err)
		}
		return string(out), nil
	})
	if err != nil {
		return model.JournalEntry{}, err
	}
	return e, nil
}

func storedIDs(raw []json.RawMessage) []string {
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		var e model.JournalEntry
		_ = json.Unmarshal(r, &e)
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Replace overwrites the stored entries.
func (s *Store) Replace(ctx context.Context, entries []model.JournalEntry) error {
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return s.KV.Set(ctx, s.Key, string(out))
}
