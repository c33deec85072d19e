package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// RecommendedAccounts is how many accounts the "largest balances" message
// names.
const RecommendedAccounts = 3

// Recommendations returns the highlight messages for a summary: the balance
// status, any type carrying a balance opposite its normal side, and the
// largest account balances.
func Recommendations(s ledger.Summary, tolerance decimal.Decimal, f Formatter) []string {
	var messages []string
	for _, finding := range ledger.Check(s, tolerance) {
		messages = append(messages, Message(finding, f))
	}

	top := s.TotalsByAccount
	if len(top) > RecommendedAccounts {
		top = top[:RecommendedAccounts]
	}
	if len(top) > 0 {
		parts := make([]string, len(top))
		for i, a := range top {
			parts[i] = fmt.Sprintf("%s (%s)", a.AccountName, f.Format(a.Net))
		}
		messages = append(messages, "Largest balances: "+strings.Join(parts, ", ")+".")
	}
	return messages
}

// Message renders a finding as a sentence.
func Message(finding ledger.Finding, f Formatter) string {
	switch finding.Kind {
	case ledger.FindingBalanced:
		return "Ledger debits and credits are balanced."
	case ledger.FindingUnbalanced:
		return fmt.Sprintf("Ledger debits and credits differ by %s. Investigate recent journal entries.", f.Format(finding.Amount))
	case ledger.FindingCreditBalance:
		return fmt.Sprintf("%s accounts show a credit balance. Review for potential misclassifications.", TitleCase(string(finding.AccountType)))
	case ledger.FindingDebitBalance:
		return fmt.Sprintf("%s accounts show a debit balance. Confirm the entries are recorded correctly.", TitleCase(string(finding.AccountType)))
	default:
		return finding.String()
	}
}
