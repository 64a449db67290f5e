package tables

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/spans"
)

// DataColumns is the number of columns to the right of the explanation.
const DataColumns = 6

// ErrColumnCount is returned when the consensus does not have exactly one
// explanation column and DataColumns data columns.
var ErrColumnCount = errors.New("unexpected column count")

// Options holds configuration for row materialization.
type Options struct {
	// LineBreak joins the lines of a multi-line explanation.
	// Default: the two characters `\n`
	LineBreak string
}

// DefaultOptions returns the default materialization options.
func DefaultOptions() Options {
	return Options{
		LineBreak: `\n`,
	}
}

// Materialize builds one row per block line. Every row starts from base and
// receives the block id, the block explanation and the six data columns of
// its line. The rows of the page are passed through Dedupe.
func Materialize(base model.Row, blocks []model.Block, columns spans.Set, opts Options) ([]model.Row, error) {
	if got := columns.Len() - 1; got != DataColumns {
		return nil, fmt.Errorf("%w: %d data columns in %s, want %d", ErrColumnCount, max(got, 0), columns, DataColumns)
	}

	var rows []model.Row
	for _, block := range blocks {
		explanation := Explanation(block, columns, opts.LineBreak)

		for i, line := range block.Lines {
			if err := checkTokens(line, columns); err != nil {
				return nil, fmt.Errorf("sequence %s line %d: %w", block.ID, i+1, err)
			}

			values := make([]string, DataColumns)
			for c := range values {
				v, _ := columns.ExtractColumn(line, c+1)
				values[c] = cleanValue(v)
			}

			row := base
			row.SequenceNum = block.ID
			row.Explanation = explanation
			row.PosY0 = stripCommas(values[0])
			row.AmtY0 = stripCommas(values[1])
			row.MofY0 = values[2]
			row.PosY1 = stripCommas(values[3])
			row.AmtY1 = stripCommas(values[4])
			row.MofY1 = values[5]
			rows = append(rows, row)
		}
	}
	return Dedupe(rows), nil
}

// checkTokens verifies that every non-blank run of line lies within one
// column.
func checkTokens(line string, columns spans.Set) error {
	for _, token := range spans.FromText(line).Spans() {
		if _, err := columns.Index(token); err != nil {
			return err
		}
	}
	return nil
}

// Explanation returns the text of column 0 across the block's lines. Blank
// lines at either end are dropped, common indentation is removed and the
// remaining lines are joined with lineBreak.
func Explanation(block model.Block, columns spans.Set, lineBreak string) string {
	lines := make([]string, 0, len(block.Lines))
	for _, line := range block.Lines {
		text, _ := columns.ExtractColumn(line, 0)
		text = strings.TrimRight(text, " \t")
		lines = append(lines, text)
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(dedent(lines), lineBreak)
}

// dedent removes the leading blanks shared by every non-blank line.
func dedent(lines []string) []string {
	indent := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		}
	}
	return out
}

func cleanValue(v string) string {
	return strings.Trim(v, " \t*")
}

func stripCommas(v string) string {
	return strings.ReplaceAll(v, ",", "")
}

// Dedupe drops rows produced by soft line wraps. A row identical to its
// predecessor is dropped. A row sharing its predecessor's non-numeric fields
// is dropped when it has no numbers, and replaces the predecessor when only
// the predecessor has none. Rows with different numbers are all kept.
func Dedupe(rows []model.Row) []model.Row {
	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if slices.Equal(prev.Values(), r.Values()) {
				continue
			}
			if prev.SamePrefix(r) {
				if !r.HasNumbers() {
					continue
				}
				if !prev.HasNumbers() {
					out[n-1] = r
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}
