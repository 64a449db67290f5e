// Package pages parses one worksheet page into a [model.Page].
//
// A [Parser] walks the page with a line cursor through a fixed sequence of
// states: the two page header lines, the content header that decides the
// page kind, the program or department sub-headers, the fiscal year
// headings and finally the body. Markers are searched anywhere on their
// line rather than at fixed field positions.
//
// The body is patched, split into sequence blocks, normalized and merged
// into the column consensus of the parser's [layout.Session] before rows are
// materialized:
//
//	session := layout.NewSession(layout.DefaultConfig())
//	parser := pages.NewParser(session, pages.DefaultOptions())
//	page, err := parser.Parse(pageText, documentTime)
//
// # Errors
//
// A missing or malformed header element is a [StructureError] (matching
// [ErrStructure]); an unknown department code is a [LookupError] (matching
// [ErrLookup]). Consensus and row errors from the layout and tables packages
// are returned wrapped.
package pages
