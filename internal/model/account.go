package model

// AccountType classifies the account a line item posts to.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeOther     AccountType = "other"
)

// BaselineTypes are always reported, in this order, even with no activity.
var BaselineTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
	AccountTypeOther,
}

// Side is one side of a double-entry posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// NormalBalance returns the side on which accounts of type t conventionally
// carry a positive balance. ok is false for "other" and unknown types.
func NormalBalance(t AccountType) (side Side, ok bool) {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit, true
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue:
		return SideCredit, true
	default:
		return "", false
	}
}

// IsBaseline reports whether t is one of the six baseline types.
func IsBaseline(t AccountType) bool {
	for _, b := range BaselineTypes {
		if b == t {
			return true
		}
	}
	return false
}
