package model

import (
	"strconv"
	"time"
)

// TimeLayout is the layout used to render Row.Datetime.
const TimeLayout = "2006-01-02 15:04:05"

// Header names the fields of a Row in output order.
var Header = []string{
	"datetime",
	"pagenum",
	"pages",
	"year0",
	"year1",
	"detail_type",
	"department_code",
	"department",
	"program_id",
	"program_name",
	"structure_number",
	"subject_committee_code",
	"subject_committee_name",
	"sequence_num",
	"explanation",
	"pos_y0",
	"amt_y0",
	"mof_y0",
	"pos_y1",
	"amt_y1",
	"mof_y1",
}

// Row is one extracted line item.
type Row struct {
	Datetime             time.Time
	PageNum              int
	Pages                int
	Year0                int
	Year1                int
	DetailType           string
	DepartmentCode       string
	Department           string
	ProgramID            string
	ProgramName          string
	StructureNumber      string
	SubjectCommitteeCode string
	SubjectCommitteeName string
	SequenceNum          string
	Explanation          string

	// Per fiscal year: positions, amount and means of financing.
	PosY0 string
	AmtY0 string
	MofY0 string
	PosY1 string
	AmtY1 string
	MofY1 string
}

// Values returns the row's fields rendered as text, in Header order.
func (r Row) Values() []string {
	return append(r.Prefix(), r.Numbers()...)
}

// Prefix returns the rendered non-numeric fields, up to and including the
// explanation.
func (r Row) Prefix() []string {
	return []string{
		formatTime(r.Datetime),
		formatInt(r.PageNum),
		formatInt(r.Pages),
		formatInt(r.Year0),
		formatInt(r.Year1),
		r.DetailType,
		r.DepartmentCode,
		r.Department,
		r.ProgramID,
		r.ProgramName,
		r.StructureNumber,
		r.SubjectCommitteeCode,
		r.SubjectCommitteeName,
		r.SequenceNum,
		r.Explanation,
	}
}

// Numbers returns the six per-year fields.
func (r Row) Numbers() []string {
	return []string{r.PosY0, r.AmtY0, r.MofY0, r.PosY1, r.AmtY1, r.MofY1}
}

// HasNumbers reports whether any per-year field is non-empty.
func (r Row) HasNumbers() bool {
	for _, v := range r.Numbers() {
		if v != "" {
			return true
		}
	}
	return false
}

// SamePrefix reports whether r and other agree on every non-numeric field.
func (r Row) SamePrefix(other Row) bool {
	a, b := r.Prefix(), other.Prefix()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
