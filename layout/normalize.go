package layout

import (
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/spans"
)

// FillerRule rewrites every run of exactly Length Char runes into Keep Char
// runes followed by spaces, so the run no longer reaches into the next
// column while later text keeps its offsets.
type FillerRule struct {
	Char   rune
	Length int
	Keep   int
}

// Apply returns line with the rule applied.
func (r FillerRule) Apply(line string) string {
	if r.Length <= 0 || r.Keep < 0 || r.Keep >= r.Length {
		return line
	}

	runes := []rune(line)
	changed := false
	for i := 0; i < len(runes); {
		if runes[i] != r.Char {
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] == r.Char {
			j++
		}
		if j-i == r.Length {
			for k := i + r.Keep; k < j; k++ {
				runes[k] = ' '
			}
			changed = true
		}
		i = j
	}
	if !changed {
		return line
	}
	return string(runes)
}

// MarkerRule inserts a space at Column in lines of pages of Kind that extend
// past Column. It separates a marker character from the field it abuts.
type MarkerRule struct {
	Kind   model.Kind
	Column int
}

// Apply returns line with a space inserted when the rule matches kind.
func (r MarkerRule) Apply(kind model.Kind, line string) string {
	if kind != r.Kind || r.Column < 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= r.Column {
		return line
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:r.Column]...)
	out = append(out, ' ')
	out = append(out, runes[r.Column:]...)
	return string(out)
}

// Prepare applies the configured filler and marker rules to lines and returns
// the rewritten lines. The input slice is not modified.
func (c Config) Prepare(kind model.Kind, lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, f := range c.Fillers {
			line = f.Apply(line)
		}
		for _, m := range c.Markers {
			line = m.Apply(kind, line)
		}
		out[i] = line
	}
	return out
}

// PageSpans returns the column evidence of one page: the union of the
// non-blank runs of every line plus the explanation column of its kind.
func (c Config) PageSpans(kind model.Kind, lines []string) spans.Set {
	return spans.New(0, c.ExplanationWidth(kind)).Union(spans.FromLines(lines))
}
