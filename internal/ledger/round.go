package ledger

import "github.com/shopspring/decimal"

// Places is the number of decimal places reported for every amount.
const Places = 2

// Round rounds an amount to Places, half away from zero. Amounts are
// accumulated exactly, so no epsilon nudge is needed.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
