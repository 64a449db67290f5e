// Package tables turns the body of a worksheet page into rows.
//
// # Sequence Blocks
//
// [FindBlocks] partitions body lines into sequence blocks. A line opens a new
// block when its fixed-width sequence code field holds a new id, or when the
// field is blank and the text begins with one of the special captions:
//
//	blocks, err := tables.FindBlocks(body, refdata.SpecialCaptions)
//
// Lines without an id continue the most recently opened block, which is how
// wrapped narrative attaches to its sequence.
//
// # Rows
//
// [Materialize] maps the consensus columns onto row fields. Column 0 is the
// explanation, columns 1 to 6 are positions, amount and means of financing
// for each fiscal year:
//
//	rows, err := tables.Materialize(page.BaseRow(), blocks, consensus, tables.DefaultOptions())
//
// [Dedupe] removes the empty and repeated rows produced by soft line wraps.
package tables
