package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English, cases.NoLower)

// TitleCase turns an account type into a display label: "accounts_payable"
// becomes "Accounts Payable". Words are split on whitespace, underscores and
// hyphens. An empty label is "Other".
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return "Other"
	}
	for i, w := range words {
		words[i] = titler.String(w)
	}
	return strings.Join(words, " ")
}
