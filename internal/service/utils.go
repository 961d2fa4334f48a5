package service

import (
	"strings"
	"unicode/utf8"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// sanitizeUTF8 strips invalid UTF-8 sequences before a message is written to
// PostgreSQL, which rejects text containing them.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
