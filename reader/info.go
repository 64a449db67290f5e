package reader

import (
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Info holds the document information read from a PDF.
type Info struct {
	PageCount int
	Created   time.Time // Zero when the PDF carries no parsable date
	Raw       string    // CreationDate as stored in the info dictionary
}

// ReadInfo reads the page count and creation date of the PDF at path.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	info := &Info{
		PageCount: ctx.PageCount,
		Raw:       ctx.XRefTable.CreationDate,
	}
	if t, ok := ParseDate(info.Raw); ok {
		info.Created = t
	}
	return info, nil
}

// ParseDate parses a PDF date string such as "D:20150105163312-10'00'".
// The wall clock time of the document is kept and the zone offset dropped,
// matching the timestamps printed on its pages.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, ok := types.DateTime(s, true)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
}
