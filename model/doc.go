// Package model provides the data structures produced by worksheet
// extraction.
//
// # Document Structure
//
// A [Document] holds the metadata of one converted worksheet, the pages that
// parsed cleanly, the rows they produced and the pages that failed:
//
//	doc := model.NewDocument()
//	doc.AddPage(page)
//	doc.AddFailure(model.PageFailure{Number: 3, Cause: err})
//	doc.BadPages() // [3]
//
// # Pages
//
// Each [Page] is classified as a [ProgramPage] or a [DepartmentPage] and
// carries the header attributes, the body split into sequence [Block] values
// and the rows materialized from them.
//
// # Rows
//
// A [Row] is one output record. [Header] names its fields in output order and
// [Row.Values] renders a row in that same order.
package model
