package model

import (
	"fmt"
)

// Document represents one processed worksheet.
type Document struct {
	Metadata Metadata
	Pages    []*Page
	Rows     []Row
	Failures []PageFailure
}

// Metadata contains document-level information.
type Metadata struct {
	Source    string // Path of the source file, if any
	Created   string // Creation timestamp reported by the converter
	PageCount int    // Number of page texts handed to the parser
	Digest    string // BLAKE3 digest of the converted text, hex encoded
}

// PageFailure records a page that could not be parsed.
type PageFailure struct {
	Number int // 1-indexed position of the page in the document
	Cause  error
}

// Error implements the error interface.
func (f PageFailure) Error() string {
	return fmt.Sprintf("page %d: %v", f.Number, f.Cause)
}

// Unwrap returns the underlying cause.
func (f PageFailure) Unwrap() error {
	return f.Cause
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a parsed page and its rows.
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
	d.Rows = append(d.Rows, page.Rows...)
}

// AddFailure records a failed page.
func (d *Document) AddFailure(f PageFailure) {
	d.Failures = append(d.Failures, f)
}

// GetPage returns the parsed page with the given page number, or nil.
func (d *Document) GetPage(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the number of pages that parsed cleanly.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// BadPages returns the numbers of the pages that failed, in document order.
// An empty result means the document was processed cleanly.
func (d *Document) BadPages() []int {
	out := make([]int, 0, len(d.Failures))
	for _, f := range d.Failures {
		out = append(out, f.Number)
	}
	return out
}

// Clean reports whether every page parsed.
func (d *Document) Clean() bool {
	return len(d.Failures) == 0
}
