package export

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/worksheet/model"
)

// Delimiters.
const (
	Tab   = '\t'
	Comma = ','
)

// DelimiterFor returns Comma for ".csv" paths and Tab otherwise. A trailing
// ".xz" is ignored.
func DelimiterFor(path string) rune {
	path = strings.TrimSuffix(strings.ToLower(path), ".xz")
	if filepath.Ext(path) == ".csv" {
		return Comma
	}
	return Tab
}

// Writer writes rows as quoted delimited lines. The header is written before
// the first row.
type Writer struct {
	w      *bufio.Writer
	delim  string
	header bool
	rows   int
}

// NewWriter returns a Writer that separates fields with delimiter.
func NewWriter(w io.Writer, delimiter rune) *Writer {
	return &Writer{
		w:     bufio.NewWriter(w),
		delim: string(delimiter),
	}
}

// WriteHeader writes the header line if it has not been written yet.
func (w *Writer) WriteHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	return w.writeLine(model.Header)
}

// Write writes one row.
func (w *Writer) Write(r model.Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	w.rows++
	return w.writeLine(r.Values())
}

// WriteAll writes the header and every row, then flushes. The header is
// written even when rows is empty.
func (w *Writer) WriteAll(rows []model.Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) writeLine(fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := w.w.WriteString(w.delim); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(Quote(f)); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// Quote encloses s in double quotes and doubles the quotes inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
