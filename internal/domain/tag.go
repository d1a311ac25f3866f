package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// FormatTag embeds an identifier into a free-text field as a bracketed
// prefix: "[<identifier>] <name>". ParseTag is its exact inverse for inputs
// that do not themselves contain brackets.
func FormatTag(identifier, name string) string {
	return fmt.Sprintf("[%s] %s", identifier, name)
}

// ParseTag extracts the first bracketed identifier from a free-text field and
// returns it together with the remaining text. ok is false when no tag is
// present, which marks the value as foreign/unmanaged rather than an error.
func ParseTag(s string) (identifier, name string, ok bool) {
	loc := tagPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", "", false
	}

	identifier = strings.TrimSpace(s[loc[2]:loc[3]])
	if identifier == "" {
		return "", "", false
	}

	name = strings.TrimSpace(s[:loc[0]] + s[loc[1]:])

	return identifier, name, true
}
