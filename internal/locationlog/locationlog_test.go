package locationlog

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/autogaap/internal/geo"
)

func TestMarshalRoundTrip(t *testing.T) {
	rec := Record{
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		IP:        "203.0.113.7",
		Country:   "Canada",
		Region:    "Ontario",
		City:      "Toronto, Old",
		Lat:       43.6532,
		Lon:       -79.3832,
	}
	row := MarshalRecord(rec)
	assert.Equal(t, "43.6532", row[colLat])

	got, err := UnmarshalRecord(row)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	_, err := UnmarshalRecord([]string{"x"})
	assert.Error(t, err)

	_, err = UnmarshalRecord([]string{"yesterday", "", "", "", "", "", ""})
	assert.Error(t, err)

	_, err = UnmarshalRecord([]string{"2025-03-01T12:00:00Z", "", "", "", "", "north", ""})
	assert.Error(t, err)
}

func TestLog_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)

	records, err := log.Read()
	require.NoError(t, err)
	assert.Empty(t, records)

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	loc := geo.Location{IP: "203.0.113.7", Country: "Canada", RegionName: "Ontario", City: "Toronto", Lat: 1.5, Lon: -2.25}
	require.NoError(t, log.Append(FromLocation(loc, ts)))
	require.NoError(t, log.Append(FromLocation(loc, ts.Add(time.Hour))))

	records, err = log.Read()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ontario", records[0].Region)
	assert.Equal(t, ts.Add(time.Hour), records[1].Timestamp)

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, Header, lines[0])
	assert.Len(t, lines, 3)
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := New(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, log.Append(Record{Timestamp: time.Now(), IP: "198.51.100.1"}))
		}()
	}
	wg.Wait()

	records, err := log.Read()
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
