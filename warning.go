package worksheet

import (
	"fmt"
	"strings"

	"github.com/tsawler/worksheet/model"
)

// Warning is a non-fatal issue found while processing a document.
type Warning struct {
	Page    int // Page number, 0 for document-level warnings
	Message string
}

// String formats the warning with its page.
func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into one line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// pageWarnings collects the warnings recorded on the pages of doc.
func pageWarnings(doc *model.Document) []Warning {
	var out []Warning
	for _, p := range doc.Pages {
		for _, msg := range p.Warnings {
			out = append(out, Warning{Page: p.Number, Message: msg})
		}
	}
	return out
}
