package pages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Markers searched for in the header lines.
const (
	TitleMarker            = "LEGISLATIVE BUDGET SYSTEM"
	DetailMarker           = "Detail Type:"
	WorksheetMarker        = "BUDGET WORKSHEET"
	ProgramMarker          = "Program ID"
	DepartmentMarker       = "Department"
	StructureMarker        = "Structure #:"
	SubjectCommitteeMarker = "Subject Committee:"
	SequenceMarker         = "SEQ #"
	ExplanationMarker      = "EXPLANATION"
)

// TimestampLayout is the layout of the timestamp printed on every page, after
// single-digit hours have been padded.
const TimestampLayout = "Monday, January 2, 2006 03:04:05 PM"

var (
	singleDigitHour = regexp.MustCompile(`\b(\d):(\d{2}):(\d{2})\b`)
	pageMarker      = regexp.MustCompile(`^Page\s+(\d+)\s+of\s+(\d+)$`)
	fiscalYear      = regexp.MustCompile(`^FY\s+(\d{4})$`)
)

// ParseTimestamp parses a page header timestamp such as
// "Monday, January 5, 2015 4:33:12 PM".
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	s = singleDigitHour.ReplaceAllString(s, "0$1:$2:$3")
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParsePageMarker parses "Page X of Y".
func ParsePageMarker(s string) (number, total int, err error) {
	m := pageMarker.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("not a page marker: %q", s)
	}
	number, _ = strconv.Atoi(m[1])
	total, _ = strconv.Atoi(m[2])
	if number < 1 || number > total {
		return 0, 0, fmt.Errorf("page %d of %d out of range", number, total)
	}
	return number, total, nil
}

// ParseFiscalYear parses a heading such as "FY 2015".
func ParseFiscalYear(s string) (int, bool) {
	m := fiscalYear.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	year, _ := strconv.Atoi(m[1])
	return year, true
}

// indexPrefix returns the index of the first token that begins with prefix,
// or -1.
func indexPrefix(tokens []string, prefix string) int {
	for i, tok := range tokens {
		if strings.HasPrefix(strings.TrimSpace(tok), prefix) {
			return i
		}
	}
	return -1
}

// indexContains returns the index of the first token containing s, or -1.
func indexContains(tokens []string, s string) int {
	for i, tok := range tokens {
		if strings.Contains(tok, s) {
			return i
		}
	}
	return -1
}

// valueAfter returns the text following marker in tokens[i] and the token
// after that. When the marker fills its token, the next two tokens are
// returned instead.
func valueAfter(tokens []string, i int, marker string) (value, next string) {
	tok := tokens[i]
	rest := tok[strings.Index(tok, marker)+len(marker):]
	rest = strings.TrimSpace(strings.TrimLeft(rest, ": "))

	if rest == "" {
		if i+1 < len(tokens) {
			value = tokens[i+1]
		}
		if i+2 < len(tokens) {
			next = tokens[i+2]
		}
		return value, next
	}
	if i+1 < len(tokens) {
		next = tokens[i+1]
	}
	return rest, next
}

// splitWord splits s into its first word and the remaining text.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:])
	}
	return s, ""
}
