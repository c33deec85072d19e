package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names a line-item field that can fall back to a default value.
type Field uint8

const (
	FieldAccountName Field = 1 << iota
	FieldAccountType
	FieldDebit
	FieldCredit
)

var fieldNames = []struct {
	f    Field
	name string
}{
	{FieldAccountName, "accountName"},
	{FieldAccountType, "accountType"},
	{FieldDebit, "debit"},
	{FieldCredit, "credit"},
}

// Has reports whether every field in g is set in f.
func (f Field) Has(g Field) bool { return f&g == g }

func (f Field) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	for _, fn := range fieldNames {
		if f.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// LineItem is one debit/credit posting within a journal entry.
//
// AccountName and AccountType hold the text as it appeared in the source
// record; defaulting and case folding happen when the ledger is summarized.
type LineItem struct {
	AccountName string
	AccountType string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Defaulted   Field // fields that were absent or unusable in the source record
}

// JournalEntry is one recorded transaction.
type JournalEntry struct {
	ID          string
	Date        string
	Description string
	LineItems   []LineItem
	Malformed   bool // the source record had no usable "entries" list
}

type lineItemJSON struct {
	AccountName string      `json:"accountName"`
	AccountType string      `json:"accountType"`
	Debit       json.Number `json:"debit"`
	Credit      json.Number `json:"credit"`
}

type journalEntryJSON struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Entries     json.RawMessage `json:"entries,omitempty"`
}

// MarshalJSON writes the line item in the ledger document shape.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		AccountName: li.AccountName,
		AccountType: li.AccountType,
		Debit:       json.Number(li.Debit.String()),
		Credit:      json.Number(li.Credit.String()),
	})
}

// UnmarshalJSON decodes a line item without ever failing: unusable fields
// fall back to their zero value and are recorded in Defaulted.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	*li = decodeLineItem(data)
	return nil
}

func decodeLineItem(data []byte) LineItem {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return LineItem{Defaulted: FieldAccountName | FieldAccountType | FieldDebit | FieldCredit}
	}

	var li LineItem
	name, ok := ParseText(fields["accountName"])
	if !ok || strings.TrimSpace(name) == "" {
		li.Defaulted |= FieldAccountName
	}
	li.AccountName = name

	typ, ok := ParseText(fields["accountType"])
	if !ok || strings.TrimSpace(typ) == "" {
		li.Defaulted |= FieldAccountType
	}
	li.AccountType = typ

	if li.Debit, ok = ParseAmount(fields["debit"]); !ok {
		li.Defaulted |= FieldDebit
	}
	if li.Credit, ok = ParseAmount(fields["credit"]); !ok {
		li.Defaulted |= FieldCredit
	}
	return li
}

// MarshalJSON writes the entry in the ledger document shape. Malformed
// entries are written without an "entries" member so they stay malformed.
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	out := journalEntryJSON{ID: e.ID, Date: e.Date, Description: e.Description}
	if !e.Malformed {
		items := e.LineItems
		if items == nil {
			items = []LineItem{}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		out.Entries = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an entry without ever failing. A record that is not
// an object, or whose "entries" member is missing or not a list, decodes as
// a Malformed entry with no line items.
func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	*e = JournalEntry{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		e.Malformed = true
		return nil
	}

	e.ID = parseLabel(fields["id"])
	e.Date = parseLabel(fields["date"])
	e.Description = parseLabel(fields["description"])

	raw, ok := fields["entries"]
	if !ok || isNull(raw) {
		e.Malformed = true
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		e.Malformed = true
		return nil
	}
	e.LineItems = make([]LineItem, 0, len(items))
	for _, item := range items {
		e.LineItems = append(e.LineItems, decodeLineItem(item))
	}
	return nil
}

// parseLabel accepts text or a bare number for descriptive fields.
func parseLabel(raw json.RawMessage) string {
	if s, ok := ParseText(raw); ok {
		return s
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return string(raw)
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
