package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		wantLen int
	}{
		{"bare array", `[{"entries":[]},{"entries":[]}]`, "", 2},
		{"wrapped", `{"journalEntries":[{"entries":[]}]}`, "", 1},
		{"wrapped not array", `{"journalEntries":{"entries":[]}}`, "", 0},
		{"missing member", `{"other":[]}`, "", 0},
		{"custom path", `{"ledger":{"items":[{"entries":[]}]}}`, "$.ledger.items", 1},
		{"scalar", `42`, "", 0},
		{"string", `"journal"`, "", 0},
		{"null", `null`, "", 0},
		{"empty", `  `, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := DecodeDocument([]byte(tt.doc), tt.path)
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestDecodeDocument_InvalidJSON(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"journalEntries": [`), "")
	assert.Error(t, err)

	_, err = DecodeDocument([]byte(`[{"entries": [}]`), "")
	assert.Error(t, err)
}

func TestDecodeDocument_ExactNumbers(t *testing.T) {
	doc := `{"journalEntries":[{"entries":[{"accountName":"Cash","accountType":"asset","debit":0.1,"credit":0}]}]}`
	entries, err := DecodeDocument([]byte(doc), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].LineItems, 1)
	assert.Equal(t, "0.1", entries[0].LineItems[0].Debit.String())
}

func TestDecodeArray(t *testing.T) {
	entries, ok, err := DecodeArray([]byte(`[{"entries":[]}]`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, entries, 1)

	entries, ok, err = DecodeArray([]byte(`{"entries":[]}`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, entries)

	_, _, err = DecodeArray([]byte(`not json`))
	assert.Error(t, err)
}
