package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalEntryUnmarshal(t *testing.T) {
	data := `{"id":"JE-1","date":"2025-01-03","description":"Opening sale","entries":[
		{"accountName":"Cash","accountType":"Asset","debit":100,"credit":0},
		{"accountName":"Sales","accountType":"revenue","debit":0,"credit":"100.00"}
	]}`

	var e JournalEntry
	require.NoError(t, json.Unmarshal([]byte(data), &e))
	assert.False(t, e.Malformed)
	assert.Equal(t, "JE-1", e.ID)
	assert.Equal(t, "2025-01-03", e.Date)
	require.Len(t, e.LineItems, 2)

	cash := e.LineItems[0]
	assert.Equal(t, "Cash", cash.AccountName)
	assert.Equal(t, "Asset", cash.AccountType, "case folding is left to the summarizer")
	assert.True(t, cash.Debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, cash.Credit.IsZero())
	assert.Zero(t, cash.Defaulted)

	sales := e.LineItems[1]
	assert.True(t, sales.Credit.Equal(decimal.NewFromInt(100)), "numeric strings are accepted")
	assert.Zero(t, sales.Defaulted)
}

func TestJournalEntryUnmarshal_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"null entries", `{"entries":null}`},
		{"entries is object", `{"entries":{"accountName":"Cash"}}`},
		{"entries is string", `{"entries":"Cash"}`},
		{"not an object", `42`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e JournalEntry
			require.NoError(t, json.Unmarshal([]byte(tt.data), &e))
			assert.True(t, e.Malformed)
			assert.Empty(t, e.LineItems)
		})
	}
}

func TestJournalEntryUnmarshal_InSlice(t *testing.T) {
	data := `[{"entries":[]}, {}, null, {"entries":[{"accountName":"Cash","debit":5}]}]`

	var entries []JournalEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entries))
	require.Len(t, entries, 4)
	assert.False(t, entries[0].Malformed)
	assert.True(t, entries[1].Malformed)
	assert.True(t, entries[2].Malformed)
	assert.False(t, entries[3].Malformed)
	assert.Len(t, entries[3].LineItems, 1)
}

func TestLineItemDefaultedFlags(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Field
	}{
		{"complete", `{"accountName":"Cash","accountType":"asset","debit":1,"credit":0}`, 0},
		{"missing debit", `{"accountName":"Cash","accountType":"asset","credit":1}`, FieldDebit},
		{"blank name", `{"accountName":"   ","accountType":"asset","debit":1,"credit":0}`, FieldAccountName},
		{"numeric type", `{"accountName":"Cash","accountType":7,"debit":1,"credit":0}`, FieldAccountType},
		{"non-numeric amounts", `{"accountName":"Cash","accountType":"asset","debit":"abc","credit":true}`, FieldDebit | FieldCredit},
		{"infinite debit", `{"accountName":"Cash","accountType":"asset","debit":"Infinity","credit":0}`, FieldDebit},
		{"not an object", `"Cash"`, FieldAccountName | FieldAccountType | FieldDebit | FieldCredit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var li LineItem
			require.NoError(t, json.Unmarshal([]byte(tt.data), &li))
			assert.Equal(t, tt.want, li.Defaulted, "got %s", li.Defaulted)
			if li.Defaulted.Has(FieldDebit) {
				assert.True(t, li.Debit.IsZero())
			}
			if li.Defaulted.Has(FieldCredit) {
				assert.True(t, li.Credit.IsZero())
			}
		})
	}
}

func TestJournalEntryMarshal(t *testing.T) {
	e := JournalEntry{
		ID: "JE-7",
		LineItems: []LineItem{
			{AccountName: "Rent", AccountType: "expense", Debit: decimal.RequireFromString("1200.50")},
			{AccountName: "Cash", AccountType: "asset", Credit: decimal.RequireFromString("1200.50")},
		},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"debit":1200.5`)

	var got JournalEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "JE-7", got.ID)
	require.Len(t, got.LineItems, 2)
	assert.True(t, got.LineItems[0].Debit.Equal(e.LineItems[0].Debit))
	assert.True(t, got.LineItems[1].Credit.Equal(e.LineItems[1].Credit))
}

func TestJournalEntryMarshal_MalformedStaysMalformed(t *testing.T) {
	data, err := json.Marshal(JournalEntry{Malformed: true, Description: "broken"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "entries")

	var got JournalEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Malformed)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "", Field(0).String())
	assert.Equal(t, "accountName|credit", (FieldAccountName | FieldCredit).String())
}
