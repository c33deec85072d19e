package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseText returns the string held by a JSON value. ok is false when the
// value is absent or not a string.
func ParseText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ParseAmount coerces a JSON value to an amount. Numbers and numeric strings
// are accepted; anything else, including NaN and infinities, yields zero
// with ok=false.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero, false
	}
	switch raw[0] {
	case '"':
		s, ok := ParseText(raw)
		if !ok {
			return decimal.Zero, false
		}
		return ParseAmountString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return ParseAmountString(string(raw))
	default:
		return decimal.Zero, false
	}
}

// maxAmountPlaces bounds the scale of a parsed amount. Adding decimals
// rescales to the smaller exponent, so an unbounded scale such as 1e-9999999
// would make every later sum allocate millions of digits.
const maxAmountPlaces = 18

// ParseAmountString coerces text to an amount, keeping the exact decimal
// digits when possible. Digits beyond maxAmountPlaces are rounded away.
// Blank, non-numeric and non-finite input yields zero with ok=false.
func ParseAmountString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// Forms strconv accepts but decimal does not, e.g. hex floats.
		return decimal.NewFromFloat(f).Round(maxAmountPlaces), true
	}
	if d.Exponent() < -maxAmountPlaces {
		// Rounding d itself would rescale it; the float is already bounded.
		return decimal.NewFromFloat(f).Round(maxAmountPlaces), true
	}
	return d, true
}
