package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/autogaap/internal/model"
)

const sampleCSV = `entry_id,date,account_name,account_type,debit,credit,description
2025-01-001a,2025-01-05,Cash,asset,1000.00,,Owner investment
2025-01-001b,2025-01-05,Owner Capital,equity,,1000.00,Owner investment
2025-01-002a,2025-01-09,Rent Expense,expense,400,,January rent
2025-01-002b,2025-01-09,Cash,asset,,400,January rent
2025-01-003a,2025-01-12,Supplies,expense,abc,,Bad amount
`

func TestReadCSV(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2025-01-001", entries[0].ID)
	assert.Equal(t, "2025-01-05", entries[0].Date)
	assert.Equal(t, "Owner investment", entries[0].Description)
	require.Len(t, entries[0].LineItems, 2)
	assert.Equal(t, "1000", entries[0].LineItems[0].Debit.String())
	assert.True(t, entries[0].LineItems[0].Credit.IsZero())
	assert.Zero(t, entries[0].LineItems[0].Defaulted)

	bad := entries[2].LineItems[0]
	assert.True(t, bad.Debit.IsZero())
	assert.True(t, bad.Defaulted.Has(model.FieldDebit))
	assert.False(t, bad.Defaulted.Has(model.FieldCredit))
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("entry_id,date\n1,2\n"))
	assert.Error(t, err)

	entries, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	again, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, again, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].ID, again[i].ID)
		assert.Len(t, again[i].LineItems, len(entries[i].LineItems))
	}
}

func TestWriteCSV_AssignsIDs(t *testing.T) {
	entries := []model.JournalEntry{
		{ID: "2025-01-004", Date: "2025-01-20"},
		cashEntry("10"),
		{Malformed: true},
	}
	entries[0].LineItems = cashEntry("5").LineItems

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, CSVHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-004a,"))
	assert.True(t, strings.HasPrefix(lines[3], "2025-01-005a,"))
	assert.True(t, strings.HasPrefix(lines[4], "2025-01-005b,"))
}

func TestCSV_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	entries, err := (&CSV{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = (&CSV{Path: filepath.Join(t.TempDir(), "missing.csv")}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
