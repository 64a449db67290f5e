// Package layout infers the column layout shared by the pages of a
// worksheet.
//
// Converter output drifts by a few columns from page to page, so columns
// cannot be read at fixed offsets. Instead each page contributes evidence,
// the union of the non-blank runs of its body lines, and a [Consensus]
// accumulates that evidence across all pages of the same [model.Kind].
//
// # Sessions
//
// A [Session] owns one consensus per page kind and lives for exactly one
// document:
//
//	session := layout.NewSession(layout.DefaultConfig())
//	out, err := session.Merge(model.ProgramPage, pageNumber, evidence)
//
// A merge is accepted when it keeps the number of columns unchanged. Any
// other result is an [AnomalyError], which fails the page under the default
// [Reject] policy and is recorded but ignored under [Ignore].
//
// # Pre-normalization
//
// Known converter noise is removed before evidence is gathered:
//
//   - [FillerRule] shortens runs of placeholder characters of a fixed length
//   - [MarkerRule] splits a marker character off the field it collides with
//
// Which runs and columns are noise depends on the worksheet edition, so
// [DefaultConfig] carries no rules of either kind. They are supplied through
// the layout section of a configuration file (see package config):
//
//	layout:
//	  fillers:
//	    - {char: "-", length: 20, keep: 19}
//	  markers:
//	    - {kind: department, column: 80}
//
// [Config.Prepare] applies both and [Config.PageSpans] builds the evidence
// for a page.
package layout
