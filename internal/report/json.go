package report

import (
	"encoding/json"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// TypeTotalsJSON is the API view of one account type.
type TypeTotalsJSON struct {
	Debit  json.Number `json:"debit"`
	Credit json.Number `json:"credit"`
	Net    json.Number `json:"net"`
}

// AccountTotalsJSON is the API view of one account.
type AccountTotalsJSON struct {
	AccountName string      `json:"accountName"`
	AccountType string      `json:"accountType"`
	Debit       json.Number `json:"debit"`
	Credit      json.Number `json:"credit"`
	Net         json.Number `json:"net"`
}

// SummaryJSON is the API view of a summary. Amounts are numbers with two
// decimal places.
type SummaryJSON struct {
	EntryCount       int                       `json:"entryCount"`
	LineItemCount    int                       `json:"lineItemCount"`
	MalformedEntries int                       `json:"malformedEntries"`
	TotalDebits      json.Number               `json:"totalDebits"`
	TotalCredits     json.Number               `json:"totalCredits"`
	Difference       json.Number               `json:"difference"`
	TotalsByType     map[string]TypeTotalsJSON `json:"totalsByType"`
	TotalsByAccount  []AccountTotalsJSON       `json:"totalsByAccount"`
	TypeOrder        []string                  `json:"typeOrder"`
}

// JSON converts a summary to its API view.
func JSON(s ledger.Summary) SummaryJSON {
	out := SummaryJSON{
		EntryCount:       s.EntryCount,
		LineItemCount:    s.LineItemCount,
		MalformedEntries: s.MalformedEntries,
		TotalDebits:      number(s.TotalDebits),
		TotalCredits:     number(s.TotalCredits),
		Difference:       number(s.Difference()),
		TotalsByType:     make(map[string]TypeTotalsJSON, len(s.TotalsByType)),
		TotalsByAccount:  make([]AccountTotalsJSON, 0, len(s.TotalsByAccount)),
		TypeOrder:        make([]string, 0, len(s.TypeOrder)),
	}
	for t, totals := range s.TotalsByType {
		out.TotalsByType[string(t)] = TypeTotalsJSON{
			Debit:  number(totals.Debit),
			Credit: number(totals.Credit),
			Net:    number(totals.Net),
		}
	}
	for _, a := range s.TotalsByAccount {
		out.TotalsByAccount = append(out.TotalsByAccount, AccountTotalsJSON{
			AccountName: a.AccountName,
			AccountType: string(a.AccountType),
			Debit:       number(a.Debit),
			Credit:      number(a.Credit),
			Net:         number(a.Net),
		})
	}
	for _, t := range s.TypeOrder {
		out.TypeOrder = append(out.TypeOrder, string(t))
	}
	return out
}
