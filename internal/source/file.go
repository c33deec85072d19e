package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cleared-dev/autogaap/internal/model"
)

// File loads a ledger document from disk. A missing file holds no entries.
type File struct {
	Path        string
	EntriesPath string // JSONPath for object-shaped documents
}

// Name implements Source.
func (f *File) Name() string { return "file:" + f.Path }

// Load implements Source.
func (f *File) Load(_ context.Context) ([]model.JournalEntry, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", f.Path, err)
	}
	entries, err := DecodeDocument(data, f.EntriesPath)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", f.Path, err)
	}
	return entries, nil
}
