// Package spans provides a one-dimensional interval algebra used to infer
// table columns from layout-preserving text.
//
// A [Span] is a half-open interval [Start, End) of rune columns. A [Set] is
// an ordered collection of pairwise disjoint, non-empty spans. Sets are
// values: [Set.Union] and [Set.Intersect] always return a new Set and never
// modify their operands.
//
// # Tokenizing
//
// [FromText] turns one line of text into the Set of its maximal
// non-whitespace runs:
//
//	s := spans.FromText("  BASE   1.00   120,000")
//	// [2,6) [9,13) [16,23)
//
// Unioning the sets of many lines yields the column layout they share:
//
//	cols := spans.FromText(line1).Union(spans.FromText(line2))
//	fields := cols.Extract(line3)
//
// # Lookup
//
// [Set.Index] finds the span containing a query span. A query that is only
// partly inside a span is reported as [ErrPartialSpan] rather than clipped,
// since it means the assumed layout no longer matches the text.
package spans
