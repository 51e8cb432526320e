package posts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const fallbackInitial = "U"

// Initial returns the uppercased first letter of name, or "U".
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallbackInitial
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return fallbackInitial
	}
	return string(unicode.ToUpper(r))
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
