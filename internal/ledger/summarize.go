package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/model"
)

// TypeTotals aggregates activity for one account type.
type TypeTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Net    decimal.Decimal // Debit - Credit
}

// AccountTotals aggregates activity for one account name. AccountType is the
// type of the first line item seen for the account.
type AccountTotals struct {
	AccountName string
	AccountType model.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Net         decimal.Decimal
}

// Summary is the aggregate result of Summarize. Every amount is rounded to
// Places.
type Summary struct {
	EntryCount       int // includes malformed entries
	LineItemCount    int
	MalformedEntries int
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	TotalsByType     map[model.AccountType]TypeTotals
	TotalsByAccount  []AccountTotals // by |Net| descending, first-seen order on ties
	TypeOrder        []model.AccountType
}

// Difference returns TotalDebits - TotalCredits.
func (s Summary) Difference() decimal.Decimal {
	return Round(s.TotalDebits.Sub(s.TotalCredits))
}

// Balanced reports whether the debit/credit difference is within tolerance.
func (s Summary) Balanced(tolerance decimal.Decimal) bool {
	return s.Difference().Abs().LessThanOrEqual(tolerance)
}

// Type returns the totals for t, zeroed when t has no bucket.
func (s Summary) Type(t model.AccountType) TypeTotals {
	return s.TotalsByType[t]
}

type bucket struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (b *bucket) add(p Posting) {
	b.debit = b.debit.Add(p.Debit)
	b.credit = b.credit.Add(p.Credit)
}

type accountBucket struct {
	bucket
	name string
	typ  model.AccountType
}

// Summarize aggregates journal entries into totals by account type and by
// account. It never fails: malformed entries contribute no line items and
// unusable fields fall back to defaults. The input is not modified.
func Summarize(entries []model.JournalEntry) Summary {
	byType := make(map[model.AccountType]*bucket, len(model.BaselineTypes))
	typeOrder := make([]model.AccountType, 0, len(model.BaselineTypes))
	for _, t := range model.BaselineTypes {
		byType[t] = &bucket{}
		typeOrder = append(typeOrder, t)
	}

	byAccount := make(map[string]*accountBucket)
	var accountOrder []*accountBucket
	var total bucket
	lineItems, malformed := 0, 0

	for _, entry := range entries {
		if entry.Malformed {
			malformed++
			continue
		}
		for _, li := range entry.LineItems {
			p, _ := Normalize(li)
			total.add(p)
			lineItems++

			tb, ok := byType[p.AccountType]
			if !ok {
				tb = &bucket{}
				byType[p.AccountType] = tb
				typeOrder = append(typeOrder, p.AccountType)
			}
			tb.add(p)

			ab, ok := byAccount[p.AccountName]
			if !ok {
				ab = &accountBucket{name: p.AccountName, typ: p.AccountType}
				byAccount[p.AccountName] = ab
				accountOrder = append(accountOrder, ab)
			}
			ab.add(p)
		}
	}

	totalsByType := make(map[model.AccountType]TypeTotals, len(byType))
	for t, b := range byType {
		totalsByType[t] = TypeTotals{
			Debit:  Round(b.debit),
			Credit: Round(b.credit),
			Net:    Round(b.debit.Sub(b.credit)),
		}
	}

	accounts := make([]AccountTotals, 0, len(accountOrder))
	for _, ab := range accountOrder {
		accounts = append(accounts, AccountTotals{
			AccountName: ab.name,
			AccountType: ab.typ,
			Debit:       Round(ab.debit),
			Credit:      Round(ab.credit),
			Net:         Round(ab.debit.Sub(ab.credit)),
		})
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Net.Abs().GreaterThan(accounts[j].Net.Abs())
	})

	return Summary{
		EntryCount:       len(entries),
		LineItemCount:    lineItems,
		MalformedEntries: malformed,
		TotalDebits:      Round(total.debit),
		TotalCredits:     Round(total.credit),
		TotalsByType:     totalsByType,
		TotalsByAccount:  accounts,
		TypeOrder:        typeOrder,
	}
}
