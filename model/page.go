package model

import (
	"time"

	"github.com/tsawler/worksheet/spans"
)

// Kind classifies a worksheet page.
type Kind int

const (
	// ProgramPage is a page describing a single program.
	ProgramPage Kind = iota
	// DepartmentPage is a department summary page.
	DepartmentPage
)

// String returns a human-readable name for the page kind.
func (k Kind) String() string {
	switch k {
	case ProgramPage:
		return "program"
	case DepartmentPage:
		return "department"
	default:
		return "unknown"
	}
}

// Block is a named group of consecutive body lines belonging to one
// sequence. Lines hold the text to the right of the sequence code field.
type Block struct {
	ID    string
	Lines []string
}

// Page represents one parsed worksheet page.
type Page struct {
	Number       int       // 1-indexed page number from the page marker
	Total        int       // Total pages from the page marker
	Printed      time.Time // Timestamp printed in the page header
	DocumentTime string    // Creation timestamp of the source document

	Kind       Kind
	DetailType string
	Year0      int
	Year1      int

	DepartmentCode string
	Department     string

	// Program pages only
	ProgramID            string
	ProgramName          string
	StructureNumber      string
	SubjectCommitteeCode string
	SubjectCommitteeName string

	Blocks []Block
	Spans  spans.Set // Consensus spans the body was tokenized with
	Rows   []Row

	// Warnings holds non-fatal issues found while parsing.
	Warnings []string
}

// BodyLines returns the lines of all blocks in block order.
func (p *Page) BodyLines() []string {
	var lines []string
	for _, b := range p.Blocks {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// BaseRow returns a row holding the page-level header fields.
func (p *Page) BaseRow() Row {
	return Row{
		Datetime:             p.Printed,
		PageNum:              p.Number,
		Pages:                p.Total,
		Year0:                p.Year0,
		Year1:                p.Year1,
		DetailType:           p.DetailType,
		DepartmentCode:       p.DepartmentCode,
		Department:           p.Department,
		ProgramID:            p.ProgramID,
		ProgramName:          p.ProgramName,
		StructureNumber:      p.StructureNumber,
		SubjectCommitteeCode: p.SubjectCommitteeCode,
		SubjectCommitteeName: p.SubjectCommitteeName,
	}
}
