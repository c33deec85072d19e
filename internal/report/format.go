// Package report presents a ledger summary: currency formatting, HTML and
// Markdown views, chart data for Chart.js, recommendations and terminal
// output.
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// Formatter renders amounts in one currency, e.g. "$1,234.56" or "-$50.00"
// for USD.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a formatter for an ISO 4217 currency code.
func NewFormatter(code string) (Formatter, error) {
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return Formatter{}, fmt.Errorf("unknown currency %q", code)
	}
	return Formatter{currency: cur}, nil
}

// MustFormatter is NewFormatter for codes known to be valid.
func MustFormatter(code string) Formatter {
	f, err := NewFormatter(code)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the currency code.
func (f Formatter) Code() string {
	return f.cur().Code
}

func (f Formatter) cur() *money.Currency {
	if f.currency == nil {
		return money.GetCurrency(DefaultCurrency)
	}
	return f.currency
}

// Format rounds amount to the currency's minor unit and renders it.
func (f Formatter) Format(amount decimal.Decimal) string {
	cur := f.cur()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if !minor.BigInt().IsInt64() {
		return f.formatLarge(amount)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// formatLarge handles amounts beyond int64 minor units, which go-money
// cannot hold. Thousands separators are omitted.
func (f Formatter) formatLarge(amount decimal.Decimal) string {
	cur := f.cur()
	digits := amount.Abs().StringFixed(int32(cur.Fraction))
	if cur.Decimal != "." {
		digits = strings.Replace(digits, ".", cur.Decimal, 1)
	}
	out := strings.Replace(cur.Template, "1", digits, 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}
