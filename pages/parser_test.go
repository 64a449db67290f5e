package pages

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/worksheet/internal/worksheettest"
	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/patches"
	"github.com/tsawler/worksheet/tables"
)

const docTime = "2015-01-05 16:40:00"

func newTestParser() *Parser {
	opts := DefaultOptions()
	opts.Patches = patches.NewTable()
	return NewParser(layout.NewSession(layout.DefaultConfig()), opts)
}

func programPage(number, total int, items ...worksheettest.Item) worksheettest.Page {
	return worksheettest.Page{
		Number:      number,
		Total:       total,
		Program:     "AGR122",
		ProgramName: "PLANT PEST AND DISEASE CONTROL",
		Structure:   "010301000000",
		Items:       items,
	}
}

func TestParse_ProgramPage(t *testing.T) {
	src := programPage(1, 3,
		worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"),
		worksheettest.Full("100", "ADD FUNDS FOR", "5,000", "6,000"),
		worksheettest.Wrap("  PEST INSPECTORS"),
	)

	page, err := newTestParser().Parse(src.Text(), docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := time.Date(2015, time.January, 5, 16, 33, 12, 0, time.UTC)
	if !page.Printed.Equal(want) {
		t.Errorf("Printed = %v, want %v", page.Printed, want)
	}
	if page.Number != 1 || page.Total != 3 {
		t.Errorf("page %d of %d", page.Number, page.Total)
	}
	if page.Kind != model.ProgramPage {
		t.Errorf("Kind = %v", page.Kind)
	}
	if page.DetailType != "C" {
		t.Errorf("DetailType = %q", page.DetailType)
	}
	if page.DepartmentCode != "AGR" || page.Department != "Department of Agriculture (DOA)" {
		t.Errorf("department = %q %q", page.DepartmentCode, page.Department)
	}
	if page.ProgramID != "122" || page.ProgramName != "PLANT PEST AND DISEASE CONTROL" {
		t.Errorf("program = %q %q", page.ProgramID, page.ProgramName)
	}
	if page.StructureNumber != "010301000000" {
		t.Errorf("StructureNumber = %q", page.StructureNumber)
	}
	if page.SubjectCommitteeCode != "AGR" || page.SubjectCommitteeName != "AGRICULTURE" {
		t.Errorf("committee = %q %q", page.SubjectCommitteeCode, page.SubjectCommitteeName)
	}
	if page.Year0 != 2015 || page.Year1 != 2016 {
		t.Errorf("years = %d %d", page.Year0, page.Year1)
	}
	if page.DocumentTime != docTime {
		t.Errorf("DocumentTime = %q", page.DocumentTime)
	}

	if len(page.Blocks) != 2 || page.Blocks[0].ID != "BASE APPROPRIATIONS" || page.Blocks[1].ID != "100" {
		t.Fatalf("Blocks = %+v", page.Blocks)
	}
	if page.Spans.Len() != 1+tables.DataColumns {
		t.Errorf("Spans = %v", page.Spans)
	}

	if len(page.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(page.Rows))
	}
	r := page.Rows[1]
	if r.SequenceNum != "100" || r.Explanation != `ADD FUNDS FOR\n  PEST INSPECTORS` {
		t.Errorf("row 1 = %q / %q", r.SequenceNum, r.Explanation)
	}
	if r.AmtY0 != "5000" || r.AmtY1 != "6000" || r.PosY0 != "1.00" || r.MofY1 != "B" {
		t.Errorf("row 1 values = %v", r.Numbers())
	}
	if r.ProgramID != "122" || r.PageNum != 1 || r.Year1 != 2016 {
		t.Errorf("row 1 header fields = %+v", r)
	}
}

func TestParse_WithoutStructureNumber(t *testing.T) {
	src := programPage(1, 2, worksheettest.Full("", "BASE APPROPRIATIONS", "1", "2"))
	src.Structure = ""

	page, err := newTestParser().Parse(src.Text(), docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if page.StructureNumber != "" || page.SubjectCommitteeCode != "AGR" {
		t.Errorf("structure %q committee %q", page.StructureNumber, page.SubjectCommitteeCode)
	}
}

func TestParse_DepartmentPage(t *testing.T) {
	src := worksheettest.Page{
		Number:         2,
		Total:          3,
		Department:     true,
		DepartmentCode: "TRN",
		Items: []worksheettest.Item{
			worksheettest.Full("", "DEPARTMENT APPROPRIATIONS", "9,000,000", "9,100,000"),
			worksheettest.Full("", "TOTAL DEPARTMENT BUDGET", "9,000,000", "9,100,000"),
		},
	}

	page, err := newTestParser().Parse(src.Text(), docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if page.Kind != model.DepartmentPage {
		t.Errorf("Kind = %v", page.Kind)
	}
	if page.DepartmentCode != "TRN" || page.Department != "Department of Transportation (DOT)" {
		t.Errorf("department = %q %q", page.DepartmentCode, page.Department)
	}
	if page.Year0 != 2015 || page.Year1 != 2016 {
		t.Errorf("years = %d %d", page.Year0, page.Year1)
	}
	if len(page.Rows) != 2 || page.Rows[1].SequenceNum != "TOTAL DEPARTMENT BUDGET" {
		t.Fatalf("Rows = %+v", page.Rows)
	}
	if page.Rows[0].AmtY0 != "9000000" {
		t.Errorf("AmtY0 = %q", page.Rows[0].AmtY0)
	}
}

func TestParse_DepartmentPageRequiresYears(t *testing.T) {
	src := worksheettest.Page{
		Number:         2,
		Total:          3,
		Department:     true,
		DepartmentCode: "TRN",
		NoYears:        true,
		Items: []worksheettest.Item{
			worksheettest.Full("", "DEPARTMENT APPROPRIATIONS", "1", "2"),
		},
	}

	_, err := newTestParser().Parse(src.Text(), docTime)
	if !errors.Is(err, ErrStructure) {
		t.Fatalf("Parse() error = %v, want ErrStructure", err)
	}
}

func TestParse_DepartmentSubHeaderRequired(t *testing.T) {
	src := worksheettest.Page{
		Number:         2,
		Total:          3,
		Department:     true,
		DepartmentCode: "TRN",
		Items: []worksheettest.Item{
			worksheettest.Full("", "DEPARTMENT APPROPRIATIONS", "1", "2"),
		},
	}
	text := strings.Replace(src.Text(),
		"Perm    Temp    Amt     Perm    Temp    Amt",
		"Perm    Temp    Amt     Perm    Temp", 1)

	_, err := newTestParser().Parse(text, docTime)
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("Parse() error = %v, want *StructureError", err)
	}
	if !strings.Contains(se.Got, "Perm") {
		t.Errorf("StructureError.Got = %q", se.Got)
	}
}

func TestParse_LastPageIsDepartment(t *testing.T) {
	src := worksheettest.Page{
		Number:         3,
		Total:          3,
		Department:     true,
		DepartmentCode: "AGR",
		Items:          []worksheettest.Item{worksheettest.Full("", "GRAND TOTAL BUDGET", "1", "2")},
	}
	text := strings.Replace(src.Text(), "Department:   AGR   Department summary", "STATE TOTALS", 1)

	page, err := newTestParser().Parse(text, docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if page.Kind != model.DepartmentPage || page.DepartmentCode != "" {
		t.Errorf("Kind = %v, DepartmentCode = %q", page.Kind, page.DepartmentCode)
	}
	if len(page.Rows) != 1 || page.Rows[0].SequenceNum != "GRAND TOTAL BUDGET" {
		t.Errorf("Rows = %+v", page.Rows)
	}
}

func TestParse_StructureErrors(t *testing.T) {
	good := programPage(1, 2, worksheettest.Full("", "BASE APPROPRIATIONS", "1", "2")).Text()

	tests := []struct {
		name    string
		text    string
		line    int
		wantMsg string
	}{
		{"no title", strings.Replace(good, "LEGISLATIVE BUDGET SYSTEM", "SOMETHING ELSE", 1), 1, "LEGISLATIVE"},
		{"bad timestamp", strings.Replace(good, "January 5, 2015", "Jan 5th", 1), 1, "timestamp"},
		{"bad page marker", strings.Replace(good, "Page 1 of 2", "Page one", 1), 1, "Page X of Y"},
		{"no detail type", strings.Replace(good, "Detail Type: C", "Detail: C", 1), 2, "Detail Type"},
		{"no worksheet marker", strings.Replace(good, "BUDGET WORKSHEET", "WORKSHEET", 1), 2, "BUDGET WORKSHEET"},
		{"no content header", strings.Replace(good, "Program ID", "Programme", 1), 4, "Program ID"},
		{"short program code", strings.Replace(good, "AGR122", "AGR", 1), 4, "program code"},
		{"no structure", strings.Replace(good, "Structure #:", "Struct:", 1), 6, "Structure"},
		{"no committee", strings.Replace(good, "Subject Committee: AGR", "Committee AGR", 1), 7, "Subject Committee"},
		{"one fiscal year", strings.Replace(good, "FY 2016", "2016", 1), 9, "fiscal year"},
		{"no sequence heading", strings.Replace(good, "SEQ #", "SEQ", 1), 9, "SEQ #"},
		{"bad sub-header", strings.Replace(good, "Temp    Amt     Perm", "Temp    Amt", 1), 10, "sub-header"},
		{"empty page", "", 1, "LEGISLATIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().Parse(tt.text, docTime)
			if !errors.Is(err, ErrStructure) {
				t.Fatalf("Parse() error = %v, want ErrStructure", err)
			}
			var se *StructureError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *StructureError", err)
			}
			if se.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", se.Line, tt.line, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParse_DepartmentStructureError(t *testing.T) {
	src := worksheettest.Page{
		Number:         2,
		Total:          3,
		Department:     true,
		DepartmentCode: "AGR",
		Items:          []worksheettest.Item{worksheettest.Full("", "DEPARTMENT APPROPRIATIONS", "1", "2")},
	}
	text := strings.Replace(src.Text(), "SECOND FY", "NEXT", 1)

	_, err := newTestParser().Parse(text, docTime)
	if !errors.Is(err, ErrStructure) {
		t.Errorf("Parse() error = %v, want ErrStructure", err)
	}
}

func TestParse_UnknownDepartment(t *testing.T) {
	src := programPage(1, 2, worksheettest.Full("", "BASE APPROPRIATIONS", "1", "2"))
	src.Program = "ZZZ100"

	_, err := newTestParser().Parse(src.Text(), docTime)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("Parse() error = %v, want ErrLookup", err)
	}
	var le *LookupError
	if !errors.As(err, &le) || le.Code != "ZZZ" || le.Table != "department" {
		t.Errorf("LookupError = %+v", le)
	}
}

func TestParse_ConsensusAnomaly(t *testing.T) {
	p := newTestParser()

	first := programPage(1, 3, worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"))
	if _, err := p.Parse(first.Text(), docTime); err != nil {
		t.Fatal(err)
	}

	second := programPage(2, 3, worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"))
	text := second.Text() + strings.Repeat(" ", 21+worksheettest.ProgramWidth+40) + "EXTRA\n"

	_, err := p.Parse(text, docTime)
	if !errors.Is(err, layout.ErrConsensusAnomaly) {
		t.Errorf("Parse() error = %v, want ErrConsensusAnomaly", err)
	}
}

func TestParse_AppliesPatches(t *testing.T) {
	src := programPage(1, 2, worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"))
	text := strings.Replace(src.Text(), "120,000", "12O,000", 1)

	p := newTestParser()
	p.opts.Patches.Register(patches.Key{Timestamp: docTime, Page: 1},
		patches.ReplaceText{Line: 1, Old: "12O,000", New: "120,000"})

	page, err := p.Parse(text, docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if page.Rows[0].AmtY0 != "120000" {
		t.Errorf("AmtY0 = %q, want patched value", page.Rows[0].AmtY0)
	}

	other, err := newTestParser().Parse(text, "another document")
	if err != nil {
		t.Fatal(err)
	}
	if other.Rows[0].AmtY0 != "12O000" {
		t.Errorf("patch applied to the wrong document: %q", other.Rows[0].AmtY0)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"Monday, January 5, 2015 4:33:12 PM", time.Date(2015, 1, 5, 16, 33, 12, 0, time.UTC)},
		{"Monday, January 5, 2015 04:33:12 AM", time.Date(2015, 1, 5, 4, 33, 12, 0, time.UTC)},
		{"Friday, December 12, 2014 12:05:00 PM", time.Date(2014, 12, 12, 12, 5, 0, 0, time.UTC)},
		{"Friday,   December 12, 2014   12:05:00 AM", time.Date(2014, 12, 12, 0, 5, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("ParseTimestamp(yesterday) should fail")
	}
}

func TestParsePageMarker(t *testing.T) {
	tests := []struct {
		in     string
		number int
		total  int
		ok     bool
	}{
		{"Page 1 of 3", 1, 3, true},
		{"  Page 12 of 40 ", 12, 40, true},
		{"Page 5 of 3", 0, 0, false},
		{"Page 0 of 3", 0, 0, false},
		{"Pg 1 of 3", 0, 0, false},
		{"Page 1", 0, 0, false},
	}

	for _, tt := range tests {
		n, total, err := ParsePageMarker(tt.in)
		if (err == nil) != tt.ok || n != tt.number || total != tt.total {
			t.Errorf("ParsePageMarker(%q) = %d, %d, %v", tt.in, n, total, err)
		}
	}
}

func TestParseFiscalYear(t *testing.T) {
	if y, ok := ParseFiscalYear("FY 2015"); !ok || y != 2015 {
		t.Errorf("ParseFiscalYear(FY 2015) = %d, %v", y, ok)
	}
	if _, ok := ParseFiscalYear("FY 15"); ok {
		t.Error("ParseFiscalYear(FY 15) should fail")
	}
	if _, ok := ParseFiscalYear("FIRST FY"); ok {
		t.Error("ParseFiscalYear(FIRST FY) should fail")
	}
}

func TestValueAfter(t *testing.T) {
	tests := []struct {
		tokens []string
		marker string
		value  string
		next   string
	}{
		{[]string{"Program ID", "AGR122", "NAME"}, "Program ID", "AGR122", "NAME"},
		{[]string{"Program ID 1230001", "NAME"}, "Program ID", "1230001", "NAME"},
		{[]string{"Program ID: AGR122"}, "Program ID", "AGR122", ""},
		{[]string{"Department:", "AGR"}, "Department", "AGR", ""},
	}

	for _, tt := range tests {
		value, next := valueAfter(tt.tokens, 0, tt.marker)
		if value != tt.value || next != tt.next {
			t.Errorf("valueAfter(%q) = %q, %q, want %q, %q", tt.tokens, value, next, tt.value, tt.next)
		}
	}
}

func TestParse_IgnorePolicyWarns(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Policy = layout.Ignore
	opts := DefaultOptions()
	opts.Patches = patches.NewTable()
	p := NewParser(layout.NewSession(cfg), opts)

	first := programPage(1, 3, worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"))
	if _, err := p.Parse(first.Text(), docTime); err != nil {
		t.Fatal(err)
	}

	second := programPage(2, 3, worksheettest.Full("", "BASE APPROPRIATIONS", "120,000", "45,000"))
	text := second.Text() + strings.Repeat(" ", 21+worksheettest.ProgramWidth+40) + "EXTRA\n"

	page, err := p.Parse(text, docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(page.Warnings) != 1 || !strings.Contains(page.Warnings[0], "consensus anomaly") {
		t.Errorf("Warnings = %q", page.Warnings)
	}
	if len(page.Rows) != 1 || page.Rows[0].AmtY0 != "120000" {
		t.Errorf("Rows = %+v", page.Rows)
	}
	if !page.Spans.Equal(p.Session().Consensus(model.ProgramPage).Spans()) {
		t.Error("page spans differ from the kept consensus")
	}
}

func TestParse_UnknownFundSourceWarns(t *testing.T) {
	item := worksheettest.Full("", "BASE APPROPRIATIONS", "1", "2")
	item.Mof1 = "Z"

	page, err := newTestParser().Parse(programPage(1, 2, item).Text(), docTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(page.Warnings) != 1 || !strings.Contains(page.Warnings[0], `"Z"`) {
		t.Errorf("Warnings = %q", page.Warnings)
	}
	if page.Rows[0].MofY1 != "Z" {
		t.Errorf("MofY1 = %q", page.Rows[0].MofY1)
	}
}
