// Package textnorm normalizes free-text names at the data boundary so that
// equal names compare equal regardless of how they were typed.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name trims, collapses inner whitespace and applies NFC.
func Name(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Names normalizes every entry and drops the empty ones. The result is never nil.
func Names(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Name(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Optional normalizes a pointer value; blank becomes nil.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	n := strings.TrimSpace(norm.NFC.String(*s))
	if n == "" {
		return nil
	}
	return &n
}
