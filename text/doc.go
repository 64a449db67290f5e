// Package text provides line-level helpers for layout-preserving worksheet
// text.
//
// # Fields
//
// Worksheet header lines separate their fields with runs of two or more
// blanks. [Fields] splits a line the same way, keeping the empty leading
// field produced by indentation:
//
//	text.Fields("   Program ID  AGR122  FARMS") // ["", "Program ID", "AGR122", "FARMS"]
//
// [Tokens] drops the empty fields and is used for position-tolerant marker
// searches.
//
// # Normalization
//
// Converter output is not always valid UTF-8. [Normalize] decodes such input
// as Windows-1252, converts line endings and applies Unicode NFC so that one
// visible character occupies one rune column.
//
// # Rulers
//
// [Ruler] renders the two-line tens/units column ruler used by debug output.
package text
