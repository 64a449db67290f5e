package pages

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/patches"
	"github.com/tsawler/worksheet/refdata"
	"github.com/tsawler/worksheet/tables"
	"github.com/tsawler/worksheet/text"
)

var log = commonlog.GetLogger("worksheet.pages")

// Options holds the collaborators of a Parser.
type Options struct {
	// Tables supplies department names, captions and sub-header labels.
	// Default: refdata.Default()
	Tables *refdata.Tables

	// Patches are applied to page bodies before columns are inferred.
	// Default: patches.Global()
	Patches *patches.Table

	// Rows configures row materialization.
	Rows tables.Options
}

// DefaultOptions returns parser options backed by the built-in reference
// data and the global patch table.
func DefaultOptions() Options {
	return Options{
		Tables:  refdata.Default(),
		Patches: patches.Global(),
		Rows:    tables.DefaultOptions(),
	}
}

// Parser parses the pages of one document. Pages must be parsed in document
// order because every page updates the column consensus of the session.
type Parser struct {
	session *layout.Session
	opts    Options
}

// NewParser creates a parser that merges page columns into session.
func NewParser(session *layout.Session, opts Options) *Parser {
	if opts.Tables == nil {
		opts.Tables = refdata.Default()
	}
	if opts.Patches == nil {
		opts.Patches = patches.NewTable()
	}
	if opts.Rows.LineBreak == "" {
		opts.Rows = tables.DefaultOptions()
	}
	return &Parser{session: session, opts: opts}
}

// Session returns the layout session the parser merges into.
func (p *Parser) Session() *layout.Session {
	return p.session
}

// Parse parses the text of one page. documentTime is the creation timestamp
// of the source document and selects the patches applied to the page.
func (p *Parser) Parse(pageText, documentTime string) (*model.Page, error) {
	page := &model.Page{DocumentTime: documentTime}
	c := newCursor(text.Lines(pageText))

	if err := p.parseHeader(c, page); err != nil {
		return nil, err
	}
	if err := p.parseBody(page, c.rest()); err != nil {
		return nil, err
	}
	return page, nil
}

// parseHeader runs every state up to the start of the body.
func (p *Parser) parseHeader(c *cursor, page *model.Page) error {
	if err := parseTitleLine(c, page); err != nil {
		return err
	}
	if err := parseDetailLine(c, page); err != nil {
		return err
	}
	c.skipBlank()

	if err := p.parseContentHeader(c, page); err != nil {
		return err
	}
	c.skipBlank()

	if page.Kind == model.ProgramPage {
		if err := parseProgramHeader(c, page); err != nil {
			return err
		}
		c.skipBlank()
		if err := parseYearLine(c, page, true); err != nil {
			return err
		}
		if err := p.parseSubHeader(c); err != nil {
			return err
		}
	} else {
		if err := parseDepartmentHeader(c); err != nil {
			return err
		}
		c.skipBlank()
		if err := parseYearLine(c, page, false); err != nil {
			return err
		}
		if err := p.parseSubHeader(c); err != nil {
			return err
		}
	}

	c.skipBlank()
	return nil
}

// parseTitleLine reads the timestamp, title and page marker.
func parseTitleLine(c *cursor, page *model.Page) error {
	line, n := c.next()
	fields := text.Fields(line)

	i := indexPrefix(fields, TitleMarker)
	if i < 0 {
		return &StructureError{Line: n, Want: fmt.Sprintf("%q", TitleMarker), Got: line}
	}

	printed, err := ParseTimestamp(strings.Join(fields[:i], " "))
	if err != nil {
		return &StructureError{Line: n, Want: "page timestamp", Got: line}
	}

	tokens := text.Tokens(line)
	number, total, err := ParsePageMarker(tokens[len(tokens)-1])
	if err != nil {
		return &StructureError{Line: n, Want: `"Page X of Y"`, Got: line}
	}

	page.Printed = printed
	page.Number = number
	page.Total = total
	return nil
}

// parseDetailLine reads the detail type.
func parseDetailLine(c *cursor, page *model.Page) error {
	line, n := c.next()
	tokens := text.Tokens(line)

	i := indexPrefix(tokens, DetailMarker)
	if i < 0 {
		return &StructureError{Line: n, Want: fmt.Sprintf("%q", DetailMarker), Got: line}
	}
	if indexPrefix(tokens, WorksheetMarker) < 0 {
		return &StructureError{Line: n, Want: fmt.Sprintf("%q", WorksheetMarker), Got: line}
	}

	words := strings.Fields(strings.TrimPrefix(tokens[i], DetailMarker))
	if len(words) > 0 {
		page.DetailType = words[len(words)-1]
	}
	return nil
}

// parseContentHeader classifies the page and reads the department and
// program codes.
func (p *Parser) parseContentHeader(c *cursor, page *model.Page) error {
	line, n := c.next()
	tokens := text.Tokens(line)
	lastPage := page.Number == page.Total

	var code string
	if i := indexContains(tokens, ProgramMarker); i >= 0 {
		value, name := valueAfter(tokens, i, ProgramMarker)
		value, rest := splitWord(value)
		if name == "" {
			name = rest
		}
		runes := []rune(value)
		if len(runes) <= 3 {
			return &StructureError{Line: n, Want: "program code", Got: line}
		}
		code = string(runes[:3])
		page.Kind = model.ProgramPage
		page.ProgramID = string(runes[3:])
		page.ProgramName = name
	} else if i := indexPrefix(tokens, DepartmentMarker); i >= 0 {
		marker := DepartmentMarker
		if strings.HasPrefix(tokens[i], DepartmentMarker+" ID") {
			marker = DepartmentMarker + " ID"
		}
		value, _ := valueAfter(tokens, i, marker)
		if runes := []rune(value); len(runes) >= 3 {
			code = string(runes[:3])
		}
		page.Kind = model.DepartmentPage
	} else if lastPage {
		page.Kind = model.DepartmentPage
		if isDepartmentHeader(tokens) {
			c.back()
		}
	} else {
		return &StructureError{Line: n, Want: fmt.Sprintf("%q or %q", ProgramMarker, DepartmentMarker), Got: line}
	}

	if lastPage && page.Kind != model.DepartmentPage {
		log.Debugf("page %d: last page treated as department summary", page.Number)
		page.Kind = model.DepartmentPage
		page.ProgramID = ""
		page.ProgramName = ""
	}

	if code != "" {
		name, ok := p.opts.Tables.Department(code)
		if !ok {
			return &LookupError{Table: "department", Code: code}
		}
		page.DepartmentCode = code
		page.Department = name
	}
	return nil
}

// parseProgramHeader reads the optional structure number and the subject
// committee.
func parseProgramHeader(c *cursor, page *model.Page) error {
	line, n := c.next()
	tokens := text.Tokens(line)

	if indexPrefix(tokens, strings.TrimSuffix(SubjectCommitteeMarker, ":")) >= 0 {
		c.back()
	} else {
		i := indexPrefix(tokens, StructureMarker)
		if i < 0 {
			return &StructureError{Line: n, Want: fmt.Sprintf("%q", StructureMarker), Got: line}
		}
		value, _ := valueAfter(tokens, i, StructureMarker)
		page.StructureNumber, _ = splitWord(value)
	}

	line, n = c.next()
	tokens = text.Tokens(line)
	i := indexPrefix(tokens, SubjectCommitteeMarker)
	if i < 0 {
		return &StructureError{Line: n, Want: fmt.Sprintf("%q", SubjectCommitteeMarker), Got: line}
	}
	value, name := valueAfter(tokens, i, SubjectCommitteeMarker)
	code, rest := splitWord(value)
	if code == "" {
		return &StructureError{Line: n, Want: "subject committee code", Got: line}
	}
	if name == "" {
		name = rest
	}
	page.SubjectCommitteeCode = code
	page.SubjectCommitteeName = name
	return nil
}

// parseDepartmentHeader requires the explanation heading of a department
// summary page.
func parseDepartmentHeader(c *cursor) error {
	line, n := c.next()
	if !isDepartmentHeader(text.Tokens(line)) {
		return &StructureError{Line: n, Want: `"EXPLANATION", "FIRST FY" and "SECOND FY"`, Got: line}
	}
	return nil
}

func isDepartmentHeader(tokens []string) bool {
	return indexPrefix(tokens, "EX") >= 0 &&
		indexPrefix(tokens, "FIRST FY") >= 0 &&
		indexPrefix(tokens, "SECOND FY") >= 0
}

// parseYearLine reads the two fiscal year headings. Program pages also carry
// the sequence and explanation headings on this line.
func parseYearLine(c *cursor, page *model.Page, program bool) error {
	line, n := c.next()
	tokens := text.Tokens(line)

	if program {
		if indexPrefix(tokens, SequenceMarker) < 0 || indexPrefix(tokens, ExplanationMarker) < 0 {
			return &StructureError{Line: n, Want: fmt.Sprintf("%q and %q", SequenceMarker, ExplanationMarker), Got: line}
		}
	}

	var years []int
	for _, tok := range tokens {
		if year, ok := ParseFiscalYear(tok); ok {
			years = append(years, year)
		}
	}
	if len(years) != 2 {
		return &StructureError{Line: n, Want: "two fiscal year headings", Got: line}
	}
	page.Year0 = years[0]
	page.Year1 = years[1]
	return nil
}

// parseSubHeader requires the positions/amount labels under the fiscal
// years.
func (p *Parser) parseSubHeader(c *cursor) error {
	line, n := c.next()
	if !p.isSubHeader(line) {
		return &StructureError{
			Line: n,
			Want: fmt.Sprintf("sub-header %q", strings.Join(p.opts.Tables.SubHeaderLabels, " ")),
			Got:  line,
		}
	}
	return nil
}

// isSubHeader reports whether line is an indented line of exactly the
// configured labels.
func (p *Parser) isSubHeader(line string) bool {
	labels := p.opts.Tables.SubHeaderLabels
	fields := text.Fields(strings.TrimRight(line, " \t"))
	if len(fields) != len(labels)+1 || fields[0] != "" {
		return false
	}
	for i, label := range labels {
		if !text.HasPrefixFold(fields[i+1], label) {
			return false
		}
	}
	return true
}

// parseBody patches the body, finds its sequence blocks, merges its columns
// into the consensus and materializes its rows.
func (p *Parser) parseBody(page *model.Page, body []string) error {
	for len(body) > 0 && text.IsBlank(body[len(body)-1]) {
		body = body[:len(body)-1]
	}

	key := patches.Key{Timestamp: page.DocumentTime, Page: page.Number}
	body, applied, err := p.opts.Patches.Apply(key, body)
	if err != nil {
		return err
	}
	if applied {
		log.Infof("page %d: applied patches for %s", page.Number, key)
	}

	blocks, err := tables.FindBlocks(body, p.opts.Tables.SpecialCaptions)
	if err != nil {
		return err
	}

	cfg := p.session.Config()
	var lines []string
	for i := range blocks {
		blocks[i].Lines = cfg.Prepare(page.Kind, blocks[i].Lines)
		lines = append(lines, blocks[i].Lines...)
	}

	out, err := p.session.Merge(page.Kind, page.Number, cfg.PageSpans(page.Kind, lines))
	if err != nil {
		return err
	}
	if out.Ignored != nil {
		warn(page, "ignoring consensus anomaly: %v", out.Ignored)
	}

	rows, err := tables.Materialize(page.BaseRow(), blocks, out.Spans, p.opts.Rows)
	if err != nil {
		return fmt.Errorf("failed to build rows: %w", err)
	}

	for _, r := range rows {
		for _, mof := range []string{r.MofY0, r.MofY1} {
			if _, ok := p.opts.Tables.FundSource(mof); mof != "" && !ok {
				warn(page, "sequence %s: unknown means of financing %q", r.SequenceNum, mof)
			}
		}
	}

	page.Blocks = blocks
	page.Spans = out.Spans
	page.Rows = rows
	return nil
}

// warn logs a non-fatal issue and records it on page.
func warn(page *model.Page, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warningf("page %d: %s", page.Number, msg)
	page.Warnings = append(page.Warnings, msg)
}
