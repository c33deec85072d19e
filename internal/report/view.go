package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// DefaultTopAccounts is how many accounts the balance tables list.
const DefaultTopAccounts = 5

// Options control how a summary is presented.
type Options struct {
	Formatter   Formatter
	Tolerance   decimal.Decimal // zero means ledger.DefaultTolerance
	TopAccounts int             // zero means DefaultTopAccounts
}

// EffectiveTolerance is Tolerance, or ledger.DefaultTolerance when unset.
func (o Options) EffectiveTolerance() decimal.Decimal {
	if o.Tolerance.IsZero() {
		return ledger.DefaultTolerance
	}
	return o.Tolerance
}

func (o Options) topAccounts() int {
	if o.TopAccounts <= 0 {
		return DefaultTopAccounts
	}
	return o.TopAccounts
}

type kpi struct {
	Label string
	Value string
}

type typeRow struct {
	Label  string
	Debit  string
	Credit string
	Net    string
}

type accountRow struct {
	Name   string
	Type   string
	Debit  string
	Credit string
	Net    string
}

// summaryView is a summary with every value already formatted for display.
type summaryView struct {
	KPIs       []kpi
	Balanced   bool
	Difference string
	Types      []typeRow
	Accounts   []accountRow
}

func newSummaryView(s ledger.Summary, opts Options) summaryView {
	f := opts.Formatter
	v := summaryView{
		KPIs: []kpi{
			{"Journal Entries", strconv.Itoa(s.EntryCount)},
			{"Line Items", strconv.Itoa(s.LineItemCount)},
			{"Total Debits", f.Format(s.TotalDebits)},
			{"Total Credits", f.Format(s.TotalCredits)},
		},
		Balanced:   s.Balanced(opts.EffectiveTolerance()),
		Difference: f.Format(s.Difference()),
	}
	for _, t := range s.TypeOrder {
		totals := s.Type(t)
		v.Types = append(v.Types, typeRow{
			Label:  TitleCase(string(t)),
			Debit:  f.Format(totals.Debit),
			Credit: f.Format(totals.Credit),
			Net:    f.Format(totals.Net),
		})
	}
	top := s.TotalsByAccount
	if n := opts.topAccounts(); len(top) > n {
		top = top[:n]
	}
	for _, a := range top {
		v.Accounts = append(v.Accounts, accountRow{
			Name:   a.AccountName,
			Type:   TitleCase(string(a.AccountType)),
			Debit:  f.Format(a.Debit),
			Credit: f.Format(a.Credit),
			Net:    f.Format(a.Net),
		})
	}
	return v
}

// StatusText is the one-line balance status shown with a summary.
func StatusText(s ledger.Summary, opts Options) string {
	if s.Balanced(opts.EffectiveTolerance()) {
		return "Debits and credits are in balance."
	}
	return "Ledger is out of balance by " + opts.Formatter.Format(s.Difference()) + " (Debit - Credit)."
}
