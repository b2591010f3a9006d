package grading

import (
	"strings"
	"unicode"
)

// Normalize keeps ASCII letters, digits and the Latin-1 accented letters,
// drops everything else and collapses whitespace runs to a single space.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case keepRune(r):
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, r)
		}
	}
	return string(out)
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0xC0 && r <= 0xFF:
		// × and ÷ sit inside the Latin-1 letter block
		return r != 0xD7 && r != 0xF7
	}
	return false
}

// Tokenize normalizes s and splits it into words. Empty input gives an empty slice.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return []string{}
	}
	return strings.Split(n, " ")
}

// TokenizeAll tokenizes a sequence of raw response tokens as one text, so
// tokens containing spaces are split and punctuation-only tokens disappear.
func TokenizeAll(raw []string) []string {
	return Tokenize(strings.Join(raw, " "))
}

func foldKey(s string) string {
	return strings.ToUpper(s)
}

func foldAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = foldKey(t)
	}
	return out
}
