package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/autogaap/internal/model"
)

type fakeSource struct {
	name    string
	entries []model.JournalEntry
	err     error
	calls   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Load(context.Context) ([]model.JournalEntry, error) {
	f.calls++
	return f.entries, f.err
}

func TestFallback_FirstNonEmptyWins(t *testing.T) {
	empty := &fakeSource{name: "empty"}
	broken := &fakeSource{name: "broken", err: errors.New("boom")}
	good := &fakeSource{name: "good", entries: []model.JournalEntry{cashEntry("1")}}
	unused := &fakeSource{name: "unused", entries: []model.JournalEntry{cashEntry("2")}}

	fb := NewFallback(nil, empty, broken, good, unused)
	entries, from := fb.LoadFrom(context.Background())

	assert.Len(t, entries, 1)
	assert.Equal(t, "good", from)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 0, unused.calls)
}

func TestFallback_NothingAvailable(t *testing.T) {
	fb := NewFallback(nil,
		&fakeSource{name: "a", err: errors.New("down")},
		&fakeSource{name: "b"},
	)

	entries, err := fb.Load(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, entries)

	_, from := fb.LoadFrom(context.Background())
	assert.Empty(t, from)
	assert.Equal(t, "fallback(a,b)", fb.Name())
}

func TestFallback_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeSource{name: "a", entries: []model.JournalEntry{cashEntry("1")}}

	entries, _ := NewFallback(nil, src).LoadFrom(ctx)
	assert.Empty(t, entries)
	assert.Equal(t, 0, src.calls)
}
