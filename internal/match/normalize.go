package match

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier to lower case and drops separators, so that
// "non_consuming", "Non-Consuming" and "nonConsuming" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Tokens splits an identifier at separators and camel case boundaries and
// lower-cases every token: "getHTTPResponse" -> [get http response].
func Tokens(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a lower-to-upper transition or the end of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
