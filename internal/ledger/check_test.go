package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/autogaap/internal/model"
)

func TestCheck_Balanced(t *testing.T) {
	s := Summarize(sampleLedger())
	findings := Check(s, DefaultTolerance)
	require.NotEmpty(t, findings)
	assert.Equal(t, FindingBalanced, findings[0].Kind)
	assert.Empty(t, Problems(findings))
}

func TestCheck_Unbalanced(t *testing.T) {
	s := Summarize([]model.JournalEntry{entry(line("Loan", "liability", "50", "0"))})
	findings := Check(s, DefaultTolerance)

	require.Len(t, findings, 2)
	assert.Equal(t, FindingUnbalanced, findings[0].Kind)
	assertDec(t, "50", findings[0].Amount)

	assert.Equal(t, FindingDebitBalance, findings[1].Kind)
	assert.Equal(t, model.AccountTypeLiability, findings[1].AccountType)
	assertDec(t, "50", findings[1].Amount)
}

func TestCheck_WithinTolerance(t *testing.T) {
	s := Summarize([]model.JournalEntry{entry(
		line("Cash", "asset", "10.01", "0"),
		line("Sales", "revenue", "0", "10.00"),
	)})
	findings := Check(s, DefaultTolerance)
	assert.Equal(t, FindingBalanced, findings[0].Kind)
	assertDec(t, "0.01", findings[0].Amount)
}

func TestCheck_NormalBalanceViolations(t *testing.T) {
	s := Summarize([]model.JournalEntry{entry(
		line("Refunds", "expense", "0", "30"),
		line("Owner Draw", "equity", "30", "0"),
		line("Odd", "other", "0", "500"),
		line("Odd 2", "suspense", "500", "0"),
	)})
	findings := Check(s, DefaultTolerance)

	var kinds []FindingKind
	var types []model.AccountType
	for _, f := range findings[1:] {
		kinds = append(kinds, f.Kind)
		types = append(types, f.AccountType)
	}
	// Findings follow the type order: equity comes before expense.
	assert.Equal(t, []FindingKind{FindingDebitBalance, FindingCreditBalance}, kinds)
	assert.Equal(t, []model.AccountType{model.AccountTypeEquity, model.AccountTypeExpense}, types)
}

func TestFindingString(t *testing.T) {
	f := Finding{Kind: FindingUnbalanced, Amount: dec("50")}
	assert.Equal(t, "debits and credits differ by 50.00", f.String())

	f = Finding{Kind: FindingDebitBalance, AccountType: model.AccountTypeLiability, Amount: dec("12.5")}
	assert.Equal(t, "liability: debit-balance (net 12.50)", f.String())
}
