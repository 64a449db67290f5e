package worksheet

import (
	"encoding/hex"

	"github.com/tliron/commonlog"
	"github.com/zeebo/blake3"

	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/pages"
	"github.com/tsawler/worksheet/tables"
)

var log = commonlog.GetLogger("worksheet.driver")

// Process parses the page texts of one document in order. timestamp is the
// document creation timestamp that selects patches.
//
// Column consensus starts empty for every call. A page that fails is
// recorded in Document.Failures with its 1-indexed position and contributes
// no rows; processing continues with the next page.
func Process(pageTexts []string, timestamp string, opts Options) *model.Document {
	opts = opts.withDefaults()

	parser := pages.NewParser(layout.NewSession(opts.Layout), pages.Options{
		Tables:  opts.Tables,
		Patches: opts.Patches,
		Rows:    tables.Options{LineBreak: opts.LineBreak},
	})

	doc := model.NewDocument()
	doc.Metadata.Created = timestamp
	doc.Metadata.PageCount = len(pageTexts)
	doc.Metadata.Digest = Digest(pageTexts)

	for i, text := range pageTexts {
		n := i + 1
		page, err := parser.Parse(text, timestamp)
		if err != nil {
			f := model.PageFailure{Number: n, Cause: err}
			log.Errorf("skipping %v", f)
			doc.AddFailure(f)
			continue
		}
		if page.Number != n {
			log.Warningf("page %d is marked as page %d", n, page.Number)
		}
		log.Debugf("page %d: %s page, %d blocks, %d rows", n, page.Kind, len(page.Blocks), len(page.Rows))
		doc.AddPage(page)
	}

	if bad := doc.BadPages(); len(bad) > 0 {
		log.Warningf("%d of %d pages failed: %v", len(bad), len(pageTexts), bad)
	}
	return doc
}

// Digest returns the hex-encoded BLAKE3 digest of the converter output the
// pages came from: every page followed by a form feed.
func Digest(pageTexts []string) string {
	h := blake3.New()
	for _, text := range pageTexts {
		h.Write([]byte(text))
		h.Write([]byte{'\f'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
