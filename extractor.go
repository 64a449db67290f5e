package worksheet

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tsawler/worksheet/config"
	"github.com/tsawler/worksheet/export"
	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/patches"
	"github.com/tsawler/worksheet/reader"
	"github.com/tsawler/worksheet/refdata"
)

// Extractor provides a fluent interface for extracting rows from worksheet
// files. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	source   *reader.Source

	// Overrides
	created   time.Time
	timestamp string

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		source:    e.source,
		created:   e.created,
		timestamp: e.timestamp,
		options:   e.options.clone(),
		err:       e.err,
	}
}

// ensureSource opens the source file if it has not been read yet.
func (e *Extractor) ensureSource(ctx context.Context) (*reader.Source, error) {
	if e.source != nil {
		return e.source, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	src, err := reader.OpenContext(ctx, e.filename, e.options.withDefaults().sourceOptions(e.created))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	return src, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Options replaces every option.
func (e *Extractor) Options(opts Options) *Extractor {
	newExt := e.clone()
	newExt.options = opts.clone()
	return newExt
}

// Config applies resolved configuration settings.
//
// Example:
//
//	settings, err := config.Load("worksheet.yaml")
//	doc, warnings, err := worksheet.Open("HB500.pdf").Config(settings).Document()
func (e *Extractor) Config(s *config.Settings) *Extractor {
	newExt := e.clone()
	if s == nil {
		newExt.err = fmt.Errorf("nil config settings")
		return newExt
	}
	newExt.options = OptionsFrom(s).clone()
	return newExt
}

// ConfigFile loads and applies a YAML configuration file.
func (e *Extractor) ConfigFile(path string) *Extractor {
	s, err := config.Load(path)
	if err != nil {
		newExt := e.clone()
		if newExt.err == nil {
			newExt.err = err
		}
		return newExt
	}
	return e.Config(s)
}

// LineBreak sets the marker that joins the lines of multi-line explanations.
//
// Example:
//
//	rows, _, err := worksheet.Open("HB500.pdf").LineBreak(" ").Rows()
func (e *Extractor) LineBreak(s string) *Extractor {
	newExt := e.clone()
	newExt.options.LineBreak = s
	return newExt
}

// Policy sets how pages that disagree with the column consensus are
// handled.
func (e *Extractor) Policy(p layout.Policy) *Extractor {
	newExt := e.clone()
	newExt.options.Layout.Policy = p
	return newExt
}

// MaxShift bounds how far a column boundary may move when a page is merged
// into the consensus. Zero means unbounded.
func (e *Extractor) MaxShift(n int) *Extractor {
	newExt := e.clone()
	newExt.options.Layout.MaxShift = n
	return newExt
}

// Tables sets the reference data.
func (e *Extractor) Tables(t *refdata.Tables) *Extractor {
	newExt := e.clone()
	newExt.options.Tables = t
	return newExt
}

// Patches sets the patch table.
func (e *Extractor) Patches(p *patches.Table) *Extractor {
	newExt := e.clone()
	newExt.options.Patches = p
	return newExt
}

// Converter sets the PDF converter.
func (e *Extractor) Converter(c reader.Converter) *Extractor {
	newExt := e.clone()
	newExt.options.Converter = c
	return newExt
}

// Created overrides the document creation time found in the file.
func (e *Extractor) Created(t time.Time) *Extractor {
	newExt := e.clone()
	newExt.created = t
	if !t.IsZero() {
		newExt.timestamp = t.Format(reader.TimestampLayout)
	}
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Document processes every page and returns the document with its rows and
// page failures. Failed pages do not make Document fail; check
// Document.BadPages.
//
// Example:
//
//	doc, warnings, err := worksheet.Open("HB500.pdf").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if bad := doc.BadPages(); len(bad) > 0 {
//	    log.Println("failed pages:", bad)
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	return e.DocumentContext(context.Background())
}

// DocumentContext is Document with a context that bounds PDF conversion.
func (e *Extractor) DocumentContext(ctx context.Context) (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	src, err := e.ensureSource(ctx)
	if err != nil {
		return nil, nil, err
	}

	timestamp := e.timestamp
	if timestamp == "" {
		timestamp = src.Timestamp()
	}

	doc := Process(src.Pages, timestamp, e.options)
	doc.Metadata.Source = src.Path

	var warnings []Warning
	if timestamp == "" {
		warnings = append(warnings, Warning{Message: "document has no creation timestamp; patches keyed by timestamp were not applied"})
	}
	if src.PageCount > 0 && src.PageCount != len(src.Pages) {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("PDF has %d pages, converter produced %d", src.PageCount, len(src.Pages)),
		})
	}
	warnings = append(warnings, pageWarnings(doc)...)
	return doc, warnings, nil
}

// Settings returns the options the Extractor will process with, defaults
// filled in, or the first configuration error.
func (e *Extractor) Settings() (Options, error) {
	if e.err != nil {
		return Options{}, e.err
	}
	return e.options.withDefaults().clone(), nil
}

// Rows returns the rows of every page that parsed, in document order.
func (e *Extractor) Rows() ([]model.Row, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Rows, warnings, nil
}

// WriteTo writes the rows as tab-separated quoted text, header first.
func (e *Extractor) WriteTo(w io.Writer) (int64, error) {
	return e.write(w, export.Tab)
}

// WriteFile writes the rows to path. The delimiter follows the extension
// and ".xz" paths are compressed.
func (e *Extractor) WriteFile(path string) (*model.Document, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}

	out, err := export.Create(path)
	if err != nil {
		return doc, warnings, err
	}
	if err := export.NewWriter(out, export.DelimiterFor(path)).WriteAll(doc.Rows); err != nil {
		out.Close()
		return doc, warnings, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return doc, warnings, err
	}
	return doc, warnings, nil
}

func (e *Extractor) write(w io.Writer, delimiter rune) (int64, error) {
	rows, _, err := e.Rows()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	err = export.NewWriter(cw, delimiter).WriteAll(rows)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
