// Package worksheettest builds worksheet page text for tests.
package worksheettest

import (
	"fmt"
	"strings"
)

// Default header values.
const (
	Stamp      = "Monday, January 5, 2015 4:33:12 PM"
	DetailType = "C"
	Year0      = 2015
	Year1      = 2016
)

// Explanation column widths of the two page kinds.
const (
	ProgramWidth    = 62
	DepartmentWidth = 46
)

// Item is one body line.
type Item struct {
	Code        string
	Explanation string
	Pos0        string
	Amt0        string
	Mof0        string
	Pos1        string
	Amt1        string
	Mof1        string
}

// Full returns an item with values in all six data columns.
func Full(code, explanation, amt0, amt1 string) Item {
	return Item{
		Code:        code,
		Explanation: explanation,
		Pos0:        "1.00",
		Amt0:        amt0,
		Mof0:        "A",
		Pos1:        "2.00",
		Amt1:        amt1,
		Mof1:        "B",
	}
}

// Wrap returns an item carrying only explanation text.
func Wrap(explanation string) Item {
	return Item{Explanation: explanation}
}

// Line lays out item for an explanation column of the given width: the
// sequence code field, then the explanation, then the data fields
// right-aligned at fixed offsets.
func (it Item) Line(width int) string {
	buf := []rune(strings.Repeat(" ", 21+width+80))
	put := func(col int, s string) {
		copy(buf[col:], []rune(s))
	}
	right := func(end int, s string) {
		put(end-len([]rune(s)), s)
	}

	put(0, it.Code)
	base := 21
	put(base, it.Explanation)
	right(base+width+17, it.Pos0)
	right(base+width+34, it.Amt0)
	put(base+width+35, it.Mof0)
	right(base+width+56, it.Pos1)
	right(base+width+73, it.Amt1)
	put(base+width+74, it.Mof1)
	return strings.TrimRight(string(buf), " ")
}

// Page describes one page to render.
type Page struct {
	Number int
	Total  int

	// Department renders a department summary page when true.
	Department bool

	// Stamp overrides the printed timestamp.
	Stamp string

	// Title overrides the title marker; "-" drops it.
	Title string

	// Program is the program code token, for example "AGR122".
	Program     string
	ProgramName string
	// Structure is omitted when empty.
	Structure     string
	Committee     string
	CommitteeName string

	// DepartmentCode is the code token of a department page.
	DepartmentCode string

	// NoYears omits the fiscal year and sub-header lines of a department
	// page.
	NoYears bool

	Items []Item
}

// Text renders the page.
func (p Page) Text() string {
	stamp := p.Stamp
	if stamp == "" {
		stamp = Stamp
	}
	title := p.Title
	if title == "" {
		title = "LEGISLATIVE BUDGET SYSTEM"
	}

	var lines []string
	if title == "-" {
		lines = append(lines, fmt.Sprintf("  %s      Page %d of %d", stamp, p.Number, p.Total))
	} else {
		lines = append(lines, fmt.Sprintf("  %s      %s      Page %d of %d", stamp, title, p.Number, p.Total))
	}
	lines = append(lines,
		fmt.Sprintf("                Detail Type: %s      BUDGET WORKSHEET", DetailType),
		"",
	)

	width := ProgramWidth
	if p.Department {
		width = DepartmentWidth
		lines = append(lines, fmt.Sprintf("  Department:   %s   Department summary", p.DepartmentCode), "")
		lines = append(lines, "                     EXPLANATION                      FIRST FY          SECOND FY", "")
		if !p.NoYears {
			lines = append(lines,
				fmt.Sprintf("                                                      FY %d            FY %d", Year0, Year1),
				"                                               Perm    Temp    Amt     Perm    Temp    Amt",
			)
		}
	} else {
		name := p.ProgramName
		if name == "" {
			name = "TEST PROGRAM"
		}
		lines = append(lines, fmt.Sprintf("  Program ID   %s   %s", p.Program, name), "")
		if p.Structure != "" {
			lines = append(lines, fmt.Sprintf("  Structure #:   %s", p.Structure))
		}
		committee, committeeName := p.Committee, p.CommitteeName
		if committee == "" {
			committee, committeeName = "AGR", "AGRICULTURE"
		}
		lines = append(lines,
			fmt.Sprintf("  Subject Committee: %s   %s", committee, committeeName),
			"",
			fmt.Sprintf("  SEQ #              EXPLANATION                        FY %d            FY %d", Year0, Year1),
			"                                               Perm    Temp    Amt     Perm    Temp    Amt",
		)
	}
	lines = append(lines, "")

	for _, it := range p.Items {
		lines = append(lines, it.Line(width))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Document joins rendered pages the way the converter does: every page is
// followed by a form feed.
func Document(pages ...Page) string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p.Text())
		sb.WriteString("\f")
	}
	return sb.String()
}

// Texts renders every page.
func Texts(pages ...Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Text()
	}
	return out
}
