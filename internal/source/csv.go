package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/id"
	"github.com/cleared-dev/autogaap/internal/model"
)

// CSVHeader is the header row of a journal CSV.
const CSVHeader = "entry_id,date,account_name,account_type,debit,credit,description"

const (
	numCSVFields = 7
	colEntryID   = 0
	colDate      = 1
	colAcctName  = 2
	colAcctType  = 3
	colDebit     = 4
	colCredit    = 5
	colDesc      = 6
)

// CSV loads entries from a journal CSV on disk. A missing file holds no
// entries.
type CSV struct {
	Path string
}

// Name implements Source.
func (c *CSV) Name() string { return "csv:" + c.Path }

// Load implements Source.
func (c *CSV) Load(_ context.Context) ([]model.JournalEntry, error) {
	f, err := os.Open(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", c.Path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a journal CSV. Rows whose ids share an entry group become
// the line items of one entry, in file order. Amount cells that do not
// parse are zero and flagged as defaulted, the same as in JSON ledgers.
func ReadCSV(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numCSVFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.JournalEntry
	index := make(map[string]int)
	for _, rec := range records[1:] {
		group := id.Group(rec[colEntryID])
		i, ok := index[group]
		if !ok || group == "" {
			entries = append(entries, model.JournalEntry{
				ID:          group,
				Date:        strings.TrimSpace(rec[colDate]),
				Description: rec[colDesc],
				LineItems:   []model.LineItem{},
			})
			i = len(entries) - 1
			index[group] = i
		}
		entries[i].LineItems = append(entries[i].LineItems, unmarshalLine(rec))
	}
	return entries, nil
}

func unmarshalLine(rec []string) model.LineItem {
	li := model.LineItem{
		AccountName: rec[colAcctName],
		AccountType: rec[colAcctType],
	}
	if strings.TrimSpace(li.AccountName) == "" {
		li.Defaulted |= model.FieldAccountName
	}
	if strings.TrimSpace(li.AccountType) == "" {
		li.Defaulted |= model.FieldAccountType
	}
	li.Debit, li.Defaulted = amountCell(rec[colDebit], model.FieldDebit, li.Defaulted)
	li.Credit, li.Defaulted = amountCell(rec[colCredit], model.FieldCredit, li.Defaulted)
	return li
}

// amountCell parses an amount column. A blank cell is an ordinary zero; a
// cell that does not parse is flagged.
func amountCell(cell string, f, defaulted model.Field) (decimal.Decimal, model.Field) {
	if strings.TrimSpace(cell) == "" {
		return decimal.Zero, defaulted
	}
	d, ok := model.ParseAmountString(cell)
	if !ok {
		defaulted |= f
	}
	return d, defaulted
}

// WriteCSV writes entries as a journal CSV, header included. Entries without
// an id are numbered by date. Malformed entries have no rows to write.
func WriteCSV(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}

	for _, e := range entries {
		entryID := id.Group(e.ID)
		if entryID == "" {
			entryID = id.Next(e.Date, ids)
			ids = append(ids, entryID)
		}
		for n, li := range e.LineItems {
			if err := cw.Write(marshalLine(id.Leg(entryID, n), e, li)); err != nil {
				return fmt.Errorf("writing entry %s: %w", entryID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func marshalLine(legID string, e model.JournalEntry, li model.LineItem) []string {
	row := make([]string, numCSVFields)
	row[colEntryID] = legID
	row[colDate] = e.Date
	row[colAcctName] = li.AccountName
	row[colAcctType] = li.AccountType
	if !li.Debit.IsZero() {
		row[colDebit] = li.Debit.String()
	}
	if !li.Credit.IsZero() {
		row[colCredit] = li.Credit.String()
	}
	row[colDesc] = e.Description
	return row
}
