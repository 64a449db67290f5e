// Package worksheet extracts tabular records from budget worksheets.
//
// A worksheet is converted to layout-preserving text, one page per form
// feed. Every page is parsed into header attributes and sequence blocks,
// its columns are inferred by merging the text spans of all pages of the
// same kind, and each block line becomes a row.
//
// Basic usage:
//
//	rows, warnings, err := worksheet.Open("HB500.pdf").Rows()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", worksheet.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := worksheet.Open("HB500.pdf").
//	    ConfigFile("worksheet.yaml").
//	    LineBreak(" ").
//	    Document()
//
// Text that was converted earlier can be processed with [FromText], and the
// document driver is available directly as [Process].
package worksheet

import (
	"fmt"
	"time"

	"github.com/tsawler/worksheet/reader"
)

// Open returns an Extractor for the worksheet file at filename. PDF, text
// and HTML converter output are supported.
//
// Example:
//
//	doc, warnings, err := worksheet.Open("HB500.pdf").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  DefaultOptions(),
	}
}

// FromText returns an Extractor for converter output held in memory.
// timestamp is the document creation timestamp that selects patches.
//
// Example:
//
//	rows, _, err := worksheet.FromText(text, "2015-01-05 16:40:00").Rows()
func FromText(text, timestamp string) *Extractor {
	e := &Extractor{
		timestamp: timestamp,
		options:   DefaultOptions(),
	}
	src, err := reader.NewSource([]byte(text), time.Time{})
	if err != nil {
		e.err = fmt.Errorf("failed to read text: %w", err)
		return e
	}
	e.source = src
	return e
}

// FromSource returns an Extractor for an already-opened source.
func FromSource(src *reader.Source) *Extractor {
	return &Extractor{
		source:  src,
		options: DefaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	src := worksheet.Must(reader.Open("HB500.txt", reader.Options{}))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows is a helper that wraps a call to Rows() or Document() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	rows := worksheet.MustRows(worksheet.FromText(text, ts).Rows())
func MustRows[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
