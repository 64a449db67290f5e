package spans

import "unicode"

// FromText returns the maximal runs of non-whitespace runes in line, one
// span per run. Columns are rune offsets.
func FromText(line string) Set {
	var units []Span
	col := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			units = append(units, Span{Start: col, End: col + 1})
		}
		col++
	}
	return Of(units...)
}

// FromLines returns the union of FromText over all lines.
func FromLines(lines []string) Set {
	var set Set
	for _, line := range lines {
		set = set.Union(FromText(line))
	}
	return set
}
