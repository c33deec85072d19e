package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/cleared-dev/autogaap/internal/model"
)

// DefaultEntriesPath locates the entries list in an object-shaped ledger
// document.
const DefaultEntriesPath = "$.journalEntries"

// DecodeDocument reads a ledger document: either a bare JSON array of
// entries, or an object whose member at path (a JSONPath expression) is
// such an array. Any other shape holds no entries. Only invalid JSON is an
// error.
func DecodeDocument(data []byte, path string) ([]model.JournalEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		return decodeArray(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing ledger document: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, nil
	}

	if path == "" {
		path = DefaultEntriesPath
	}
	found, err := jsonpath.Get(path, doc)
	if err != nil {
		// A path that matches nothing is not an error for a tolerant reader.
		return nil, nil
	}
	list, ok := found.([]any)
	if !ok {
		return nil, nil
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("re-encoding ledger entries: %w", err)
	}
	return decodeArray(raw)
}

// DecodeArray reads a JSON value that should be an array of entries. ok is
// false when the value is valid JSON but not an array.
func DecodeArray(data []byte) (entries []model.JournalEntry, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, false, fmt.Errorf("parsing journal entries: invalid JSON")
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, false, nil
	}
	entries, err = decodeArray(data)
	return entries, err == nil, err
}

func decodeArray(data []byte) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing journal entries: %w", err)
	}
	return entries, nil
}
