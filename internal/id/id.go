// Package id assigns journal entry ids of the form "2025-01-001" and leg ids
// "2025-01-001a", "2025-01-001b", ... for CSV journals.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Entry returns the id of the seq-th entry in a month.
func Entry(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// Leg returns the id of the n-th line of an entry (0='a', 1='b', ...).
// Lines past 'z' continue with two letters ("aa", "ab", ...).
func Leg(entryID string, n int) string {
	if n < 26 {
		return entryID + string(rune('a'+n))
	}
	return Leg(entryID, n/26-1) + string(rune('a'+n%26))
}

// Group strips the leg suffix from a leg id.
// "2025-01-001a" -> "2025-01-001"
func Group(legID string) string {
	legID = strings.TrimSpace(legID)
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}

// Parse splits an entry or leg id into year, month and sequence.
func Parse(s string) (year, month, seq int, err error) {
	parts := strings.SplitN(Group(s), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry id %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if nums[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid entry id %q: %w", s, err)
		}
	}
	return nums[0], nums[1], nums[2], nil
}

// Next returns the id following the highest existing id in date's month.
// Ids that do not parse are ignored. A blank or unparseable date uses today.
func Next(date string, existing []string) string {
	t, err := time.Parse(dateFormat, strings.TrimSpace(date))
	if err != nil {
		t = time.Now()
	}
	year, month := t.Year(), int(t.Month())

	maxSeq := 0
	for _, e := range existing {
		y, m, seq, err := Parse(e)
		if err != nil || y != year || m != month {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return Entry(year, month, maxSeq+1)
}
