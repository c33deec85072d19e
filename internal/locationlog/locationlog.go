// Package locationlog keeps an append-only CSV of location reports received
// by the server.
package locationlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cleared-dev/autogaap/internal/geo"
)

// Header is the CSV header for location-log.csv.
const Header = "timestamp,ip,country,region,city,lat,lon"

// FileName is the log's name inside the data directory.
const FileName = "location-log.csv"

const (
	numFields    = 7
	colTimestamp = 0
	colIP        = 1
	colCountry   = 2
	colRegion    = 3
	colCity      = 4
	colLat       = 5
	colLon       = 6
)

// Record is one row in the location log.
type Record struct {
	Timestamp time.Time
	IP        string
	Country   string
	Region    string
	City      string
	Lat       float64
	Lon       float64
}

// FromLocation builds a record for loc received at ts.
func FromLocation(loc geo.Location, ts time.Time) Record {
	return Record{
		Timestamp: ts.UTC(),
		IP:        loc.IP,
		Country:   loc.Country,
		Region:    loc.RegionName,
		City:      loc.City,
		Lat:       loc.Lat,
		Lon:       loc.Lon,
	}
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colTimestamp] = r.Timestamp.Format(time.RFC3339)
	row[colIP] = r.IP
	row[colCountry] = r.Country
	row[colRegion] = r.Region
	row[colCity] = r.City
	row[colLat] = strconv.FormatFloat(r.Lat, 'f', -1, 64)
	row[colLon] = strconv.FormatFloat(r.Lon, 'f', -1, 64)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (Record, error) {
	if len(row) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return Record{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}
	lat, err := parseCoord(row[colLat])
	if err != nil {
		return Record{}, fmt.Errorf("parsing lat %q: %w", row[colLat], err)
	}
	lon, err := parseCoord(row[colLon])
	if err != nil {
		return Record{}, fmt.Errorf("parsing lon %q: %w", row[colLon], err)
	}

	return Record{
		Timestamp: ts,
		IP:        row[colIP],
		Country:   row[colCountry],
		Region:    row[colRegion],
		City:      row[colCity],
		Lat:       lat,
		Lon:       lon,
	}, nil
}

func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Log is the location log in a data directory. Appends from concurrent
// requests are serialized.
type Log struct {
	mu   sync.Mutex
	path string
}

// New returns the log stored in dir.
func New(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName)}
}

// Path returns the log file's path.
func (l *Log) Path() string { return l.path }

// Append writes records, creating the file and header if needed.
func (l *Log) Append(records ...Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening location log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every record in the log, or nothing if it does not exist.
func (l *Log) Read() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening location log: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading location log CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var records []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
