package model

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// ============================================================================
// Row Tests
// ============================================================================

func sampleRow() Row {
	return Row{
		Datetime:       time.Date(2015, time.January, 5, 16, 33, 12, 0, time.UTC),
		PageNum:        1,
		Pages:          3,
		Year0:          2015,
		Year1:          2016,
		DetailType:     "C",
		DepartmentCode: "AGR",
		Department:     "Department of Agriculture (DOA)",
		ProgramID:      "122",
		ProgramName:    "PLANT PEST AND DISEASE CONTROL",
		SequenceNum:    "BASE APPROPRIATIONS",
		Explanation:    "BASE APPROPRIATIONS",
		PosY0:          "1.00",
		AmtY0:          "120000",
		MofY0:          "A",
		PosY1:          "2.00",
		AmtY1:          "45000",
		MofY1:          "B",
	}
}

func TestRowValues(t *testing.T) {
	got := sampleRow().Values()
	want := []string{
		"2015-01-05 16:33:12", "1", "3", "2015", "2016", "C", "AGR",
		"Department of Agriculture (DOA)", "122", "PLANT PEST AND DISEASE CONTROL",
		"", "", "", "BASE APPROPRIATIONS", "BASE APPROPRIATIONS",
		"1.00", "120000", "A", "2.00", "45000", "B",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %q\nwant %q", got, want)
	}
	if len(got) != len(Header) {
		t.Errorf("len(Values()) = %d, len(Header) = %d", len(got), len(Header))
	}
}

func TestRowValues_Missing(t *testing.T) {
	got := Row{}.Values()
	for i, v := range got {
		if v != "" {
			t.Errorf("field %s = %q, want empty", Header[i], v)
		}
	}
}

func TestRowHasNumbers(t *testing.T) {
	r := sampleRow()
	if !r.HasNumbers() {
		t.Error("HasNumbers() = false for a row with amounts")
	}
	r.PosY0, r.AmtY0, r.MofY0, r.PosY1, r.AmtY1, r.MofY1 = "", "", "", "", "", ""
	if r.HasNumbers() {
		t.Error("HasNumbers() = true for a row without amounts")
	}
}

func TestRowSamePrefix(t *testing.T) {
	a := sampleRow()
	b := sampleRow()
	b.AmtY0 = "1"
	if !a.SamePrefix(b) {
		t.Error("rows differing only in amounts should share a prefix")
	}
	b.Explanation = "OTHER"
	if a.SamePrefix(b) {
		t.Error("rows with different explanations should not share a prefix")
	}
}

func TestHeaderOrder(t *testing.T) {
	if Header[0] != "datetime" || Header[13] != "sequence_num" || Header[20] != "mof_y1" {
		t.Errorf("unexpected header order: %v", Header)
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{ProgramPage, "program"},
		{DepartmentPage, "department"},
		{Kind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPageBaseRow(t *testing.T) {
	p := &Page{
		Number:          2,
		Total:           5,
		Year0:           2015,
		Year1:           2016,
		DetailType:      "C",
		ProgramID:       "0001",
		StructureNumber: "010301000000",
	}
	r := p.BaseRow()
	if r.PageNum != 2 || r.Pages != 5 || r.ProgramID != "0001" || r.StructureNumber != "010301000000" {
		t.Errorf("BaseRow() = %+v", r)
	}
	if r.SequenceNum != "" || r.HasNumbers() {
		t.Errorf("BaseRow() should not carry line item fields: %+v", r)
	}
}

func TestPageBodyLines(t *testing.T) {
	p := &Page{Blocks: []Block{
		{ID: "A", Lines: []string{"a1", "a2"}},
		{ID: "B", Lines: []string{"b1"}},
	}}
	want := []string{"a1", "a2", "b1"}
	if got := p.BodyLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("BodyLines() = %q, want %q", got, want)
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentAddPage(t *testing.T) {
	doc := NewDocument()
	doc.AddPage(&Page{Number: 1, Rows: []Row{{PageNum: 1}, {PageNum: 1}}})
	doc.AddPage(&Page{Number: 2, Rows: []Row{{PageNum: 2}}})

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
	if len(doc.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3", len(doc.Rows))
	}
	if p := doc.GetPage(2); p == nil || p.Number != 2 {
		t.Errorf("GetPage(2) = %v", p)
	}
	if p := doc.GetPage(7); p != nil {
		t.Errorf("GetPage(7) = %v, want nil", p)
	}
}

func TestDocumentBadPages(t *testing.T) {
	doc := NewDocument()
	if got := doc.BadPages(); len(got) != 0 || !doc.Clean() {
		t.Errorf("BadPages() = %v for a clean document", got)
	}

	cause := errors.New("missing marker")
	doc.AddFailure(PageFailure{Number: 3, Cause: cause})
	doc.AddFailure(PageFailure{Number: 5, Cause: cause})

	if got := doc.BadPages(); !reflect.DeepEqual(got, []int{3, 5}) {
		t.Errorf("BadPages() = %v, want [3 5]", got)
	}
	if doc.Clean() {
		t.Error("Clean() = true with failures")
	}
}

func TestPageFailure(t *testing.T) {
	cause := errors.New("boom")
	f := PageFailure{Number: 4, Cause: cause}
	if f.Error() != "page 4: boom" {
		t.Errorf("Error() = %q", f.Error())
	}
	if !errors.Is(f, cause) {
		t.Error("PageFailure should unwrap to its cause")
	}
}
