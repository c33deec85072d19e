package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/model"
)

// DefaultTolerance is the largest difference still treated as balanced.
var DefaultTolerance = decimal.New(1, -2)

// FindingKind classifies a Finding.
type FindingKind string

const (
	FindingBalanced      FindingKind = "balanced"
	FindingUnbalanced    FindingKind = "unbalanced"
	FindingCreditBalance FindingKind = "credit-balance" // debit-normal type carrying a credit balance
	FindingDebitBalance  FindingKind = "debit-balance"  // credit-normal type carrying a debit balance
)

// Finding describes one result of checking a Summary.
type Finding struct {
	Kind        FindingKind
	AccountType model.AccountType // empty for balance findings
	Amount      decimal.Decimal   // difference or net, Debit - Credit
}

func (f Finding) String() string {
	switch f.Kind {
	case FindingBalanced:
		return "debits and credits balance"
	case FindingUnbalanced:
		return fmt.Sprintf("debits and credits differ by %s", f.Amount.StringFixed(Places))
	default:
		return fmt.Sprintf("%s: %s (net %s)", f.AccountType, f.Kind, f.Amount.StringFixed(Places))
	}
}

// Problem reports whether the finding needs attention.
func (f Finding) Problem() bool {
	return f.Kind != FindingBalanced
}

// Check compares a summary against bookkeeping expectations: total debits
// must equal total credits, and every type with a normal balance must not
// carry a balance on the opposite side. Differences within tolerance are
// ignored. The balance finding always comes first, then type findings in
// TypeOrder.
func Check(s Summary, tolerance decimal.Decimal) []Finding {
	diff := s.Difference()
	findings := []Finding{{Kind: FindingBalanced, Amount: diff}}
	if diff.Abs().GreaterThan(tolerance) {
		findings[0].Kind = FindingUnbalanced
	}

	for _, t := range s.TypeOrder {
		side, ok := model.NormalBalance(t)
		if !ok {
			continue
		}
		net := s.TotalsByType[t].Net
		if net.Abs().LessThanOrEqual(tolerance) {
			continue
		}
		switch {
		case side == model.SideDebit && net.IsNegative():
			findings = append(findings, Finding{Kind: FindingCreditBalance, AccountType: t, Amount: net})
		case side == model.SideCredit && net.IsPositive():
			findings = append(findings, Finding{Kind: FindingDebitBalance, AccountType: t, Amount: net})
		}
	}
	return findings
}

// Problems returns the findings that need attention.
func Problems(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Problem() {
			out = append(out, f)
		}
	}
	return out
}
