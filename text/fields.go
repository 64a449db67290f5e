package text

import (
	"regexp"
	"strings"
)

// fieldSep matches a space followed by at least one more whitespace rune.
var fieldSep = regexp.MustCompile(` \s+`)

// Fields splits line at every run of two or more blanks. A line that starts
// with such a run yields an empty first field. An empty line yields a single
// empty field.
func Fields(line string) []string {
	return fieldSep.Split(line, -1)
}

// Tokens returns the non-empty fields of line, trimmed.
func Tokens(line string) []string {
	fields := Fields(line)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	sr := []rune(s)
	pr := []rune(prefix)
	if len(pr) > len(sr) {
		return false
	}
	return strings.EqualFold(string(sr[:len(pr)]), prefix)
}

// Lines splits text into lines on "\n". A trailing newline does not produce
// an extra empty line.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
