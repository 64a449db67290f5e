package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"github.com/tsawler/worksheet/format"
	"github.com/tsawler/worksheet/htmldoc"
	"github.com/tsawler/worksheet/text"
)

var log = commonlog.GetLogger("worksheet.reader")

// TimestampLayout formats the creation time of a document into the
// timestamp that identifies it to the patch table.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrUnsupportedFormat is returned for files that are not PDF, text or HTML.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Source is the normalized text of one worksheet document.
type Source struct {
	Path      string
	Format    format.Format
	Text      string
	Pages     []string
	Created   time.Time
	PageCount int // Page count stored in the PDF, 0 when unknown
}

// Timestamp returns the creation time formatted with TimestampLayout, or ""
// when it is unknown.
func (s *Source) Timestamp() string {
	if s.Created.IsZero() {
		return ""
	}
	return s.Created.Format(TimestampLayout)
}

// Options configures how files are opened.
type Options struct {
	// Converter turns PDF files into text.
	// Default: PDFToText{}
	Converter Converter

	// Created overrides the creation time found in the file.
	Created time.Time
}

// Open reads the worksheet file at path.
func Open(path string, opts Options) (*Source, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext reads the worksheet file at path. ctx bounds the external
// conversion of PDF files.
func OpenContext(ctx context.Context, path string, opts Options) (*Source, error) {
	f := format.Detect(path)
	if f == format.Unknown {
		sniffed, err := sniff(path)
		if err != nil {
			return nil, err
		}
		f = sniffed
	}

	var (
		src *Source
		err error
	)
	switch f {
	case format.PDF:
		src, err = openPDF(ctx, path, opts)
	case format.Text:
		src, err = openText(path)
	case format.HTML:
		src, err = openHTML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	src.Path = path
	src.Format = f
	if !opts.Created.IsZero() {
		src.Created = opts.Created
	}
	return src, nil
}

// NewSource normalizes raw converter output and splits it into pages.
func NewSource(raw []byte, created time.Time) (*Source, error) {
	normalized, err := text.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return &Source{
		Format:  format.Text,
		Text:    normalized,
		Pages:   SplitPages(normalized),
		Created: created,
	}, nil
}

// SplitPages splits converter output on form feeds. The converter ends every
// page with a form feed, so the final piece is discarded.
func SplitPages(s string) []string {
	pieces := strings.Split(s, "\f")
	last := pieces[len(pieces)-1]
	if !text.IsBlank(last) {
		log.Warningf("discarding %d bytes after the last form feed", len(last))
	}
	return pieces[:len(pieces)-1]
}

func sniff(path string) (format.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return format.DetectFromReader(f)
}

func openPDF(ctx context.Context, path string, opts Options) (*Source, error) {
	info, err := ReadInfo(path)
	if err != nil {
		return nil, err
	}

	conv := opts.Converter
	if conv == nil {
		conv = PDFToText{}
	}
	raw, err := conv.Convert(ctx, path)
	if err != nil {
		return nil, err
	}

	src, err := NewSource(raw, info.Created)
	if err != nil {
		return nil, err
	}
	src.PageCount = info.PageCount
	if len(src.Pages) != info.PageCount {
		log.Warningf("%s: converter produced %d pages, PDF has %d", path, len(src.Pages), info.PageCount)
	}
	return src, nil
}

func openText(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	mtime := stat.ModTime()
	created := time.Date(mtime.Year(), mtime.Month(), mtime.Day(), mtime.Hour(), mtime.Minute(), mtime.Second(), 0, time.UTC)
	return NewSource(raw, created)
}

func openHTML(path string) (*Source, error) {
	doc, err := htmldoc.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	created, ok := ParseDate(doc.CreationDate())
	if !ok {
		log.Warningf("%s: no creation date in document metadata", path)
	}
	return NewSource([]byte(doc.Text()), created)
}
