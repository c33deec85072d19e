package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/model"
)

// IssueKind classifies an entry-level validation problem.
type IssueKind string

const (
	IssueMalformed   IssueKind = "malformed"
	IssueUnbalanced  IssueKind = "unbalanced"
	IssueOneSided    IssueKind = "one_sided"
	IssueMissing     IssueKind = "missing_field"
	IssuePrecision   IssueKind = "precision"
	IssueDuplicateID IssueKind = "duplicate_id"
	IssueBadDate     IssueKind = "bad_date"
	IssueTypeClash   IssueKind = "type_conflict"
)

// Issue describes one problem with a single journal entry. Issues never stop
// an entry from being summarized.
type Issue struct {
	Entry       int // 1-based position in the ledger
	EntryID     string
	Line        int // 1-based line item, 0 for entry-level issues
	Kind        IssueKind
	Description string
}

func (i Issue) Error() string {
	ref := i.EntryID
	if ref == "" {
		ref = "#" + strconv.Itoa(i.Entry)
	}
	if i.Line > 0 {
		ref += " line " + strconv.Itoa(i.Line)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Kind, ref, i.Description)
}

var hundred = decimal.NewFromInt(100)

// ValidateEntries checks each entry on its own: every entry balances, every
// line item posts to exactly one side with at most two decimal places, and
// ids and dates are well formed and unique. It also reports postings whose
// account type differs from the one Summarize keeps for that account.
func ValidateEntries(entries []model.JournalEntry) []Issue {
	var issues []Issue
	seen := make(map[string]int)
	accountTypes := make(map[string]model.AccountType)
	for i, e := range entries {
		issues = append(issues, validateEntry(i+1, e)...)
		for j, li := range e.LineItems {
			p, _ := Normalize(li)
			first, ok := accountTypes[p.AccountName]
			if !ok {
				accountTypes[p.AccountName] = p.AccountType
				continue
			}
			if first != p.AccountType {
				issues = append(issues, Issue{
					Entry:       i + 1,
					EntryID:     e.ID,
					Line:        j + 1,
					Kind:        IssueTypeClash,
					Description: fmt.Sprintf("%q posted as %s but totaled as %s", p.AccountName, p.AccountType, first),
				})
			}
		}
		if e.ID == "" {
			continue
		}
		if first, dup := seen[e.ID]; dup {
			issues = append(issues, Issue{
				Entry:       i + 1,
				EntryID:     e.ID,
				Kind:        IssueDuplicateID,
				Description: fmt.Sprintf("id already used by entry #%d", first),
			})
			continue
		}
		seen[e.ID] = i + 1
	}
	return issues
}

// ValidateEntry checks a single entry.
func ValidateEntry(e model.JournalEntry) []Issue {
	return validateEntry(1, e)
}

func validateEntry(n int, e model.JournalEntry) []Issue {
	issue := func(line int, kind IssueKind, format string, args ...any) Issue {
		return Issue{Entry: n, EntryID: e.ID, Line: line, Kind: kind, Description: fmt.Sprintf(format, args...)}
	}

	if e.Malformed {
		return []Issue{issue(0, IssueMalformed, `no "entries" list`)}
	}

	var issues []Issue
	if e.Date != "" {
		if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
			issues = append(issues, issue(0, IssueBadDate, "date %q is not YYYY-MM-DD", e.Date))
		}
	}

	debits, credits := decimal.Zero, decimal.Zero
	for j, li := range e.LineItems {
		p, defaulted := Normalize(li)
		debits = debits.Add(p.Debit)
		credits = credits.Add(p.Credit)

		if missing := defaulted & (model.FieldAccountName | model.FieldAccountType); missing != 0 {
			issues = append(issues, issue(j+1, IssueMissing, "missing or unusable %s", missing))
		}
		if p.Debit.IsZero() == p.Credit.IsZero() {
			issues = append(issues, issue(j+1, IssueOneSided, "line must have exactly one of debit or credit"))
		}
		for _, amt := range []decimal.Decimal{p.Debit, p.Credit} {
			if scaled := amt.Mul(hundred); !scaled.Equal(scaled.Truncate(0)) {
				issues = append(issues, issue(j+1, IssuePrecision, "amount %s has more than %d decimal places", amt, Places))
			}
		}
	}

	if !debits.Equal(credits) {
		issues = append(issues, issue(0, IssueUnbalanced, "debits (%s) != credits (%s)", debits.StringFixed(Places), credits.StringFixed(Places)))
	}
	return issues
}
