package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/model"
)

// UnspecifiedAccount names postings whose account name is blank.
const UnspecifiedAccount = "Unspecified Account"

// Posting is a line item after defaulting.
type Posting struct {
	AccountName string
	AccountType model.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Normalize applies the ledger's defaulting rules to a line item. The
// returned Field holds every field that was defaulted, whether at decode time
// or here.
func Normalize(li model.LineItem) (Posting, model.Field) {
	defaulted := li.Defaulted

	// Padding is not part of a type: " Asset" totals under asset and a
	// whitespace-only type is blank.
	typ := strings.ToLower(strings.TrimSpace(li.AccountType))
	if typ == "" {
		typ = string(model.AccountTypeOther)
		defaulted |= model.FieldAccountType
	}

	name := li.AccountName
	if strings.TrimSpace(name) == "" {
		name = UnspecifiedAccount
		defaulted |= model.FieldAccountName
	}

	return Posting{
		AccountName: name,
		AccountType: model.AccountType(typ),
		Debit:       li.Debit,
		Credit:      li.Credit,
	}, defaulted
}
