package spans

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPartialSpan is returned by Index when a query span starts inside a span
// of the set but does not end inside it.
var ErrPartialSpan = errors.New("span partially contained")

// Span is a half-open interval [Start, End) of rune columns.
type Span struct {
	Start int
	End   int
}

// Len returns the number of columns covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// String returns the span as "[start,end)".
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Set is an ordered set of disjoint, non-empty spans. The zero value is the
// empty set.
type Set struct {
	spans []Span
}

// New returns a set holding the single span [start, end). An empty or
// inverted interval yields the empty set.
func New(start, end int) Set {
	if end <= start {
		return Set{}
	}
	return Set{spans: []Span{{Start: start, End: end}}}
}

// Of returns the union of the given spans. The spans may overlap and may be
// given in any order.
func Of(spans ...Span) Set {
	return Set{spans: sweep(spans, 1)}
}

// Len returns the number of spans in the set.
func (s Set) Len() int {
	return len(s.spans)
}

// IsEmpty reports whether the set has no spans.
func (s Set) IsEmpty() bool {
	return len(s.spans) == 0
}

// At returns the i-th span (0-indexed, left to right).
func (s Set) At(i int) Span {
	return s.spans[i]
}

// Spans returns a copy of the spans in ascending order.
func (s Set) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// End returns the end of the rightmost span, or 0 for the empty set.
func (s Set) End() int {
	if len(s.spans) == 0 {
		return 0
	}
	return s.spans[len(s.spans)-1].End
}

// Equal reports whether both sets hold exactly the same spans.
func (s Set) Equal(other Set) bool {
	if len(s.spans) != len(other.spans) {
		return false
	}
	for i := range s.spans {
		if s.spans[i] != other.spans[i] {
			return false
		}
	}
	return true
}

// String returns the spans formatted as "[a,b) [c,d) ...".
func (s Set) String() string {
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}

// Union returns the minimal set covering every column covered by s or other.
// Touching spans are merged into one.
func (s Set) Union(other Set) Set {
	all := make([]Span, 0, len(s.spans)+len(other.spans))
	all = append(all, s.spans...)
	all = append(all, other.spans...)
	return Set{spans: sweep(all, 1)}
}

// Intersect returns the set of columns covered by both s and other.
func (s Set) Intersect(other Set) Set {
	all := make([]Span, 0, len(s.spans)+len(other.spans))
	all = append(all, s.spans...)
	all = append(all, other.spans...)
	return Set{spans: sweep(all, 2)}
}

// event is one endpoint of a span in the sweep. Starts sort before ends at
// the same position so that touching spans merge.
type event struct {
	pos   int
	delta int
}

// sweep runs the classic interval sweep over spans. A result span opens when
// the running depth reaches threshold and closes when it falls below it
// again. Empty results are discarded.
func sweep(spans []Span, threshold int) []Span {
	events := make([]event, 0, 2*len(spans))
	for _, sp := range spans {
		if sp.End <= sp.Start {
			continue
		}
		events = append(events, event{pos: sp.Start, delta: 1}, event{pos: sp.End, delta: -1})
	}
	if len(events) == 0 {
		return nil
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].pos != events[j].pos {
			return events[i].pos < events[j].pos
		}
		return events[i].delta > events[j].delta
	})

	var result []Span
	depth := 0
	left := 0
	for _, ev := range events {
		if ev.delta > 0 {
			depth++
			if depth == threshold {
				left = ev.pos
			}
			continue
		}
		depth--
		if depth == threshold-1 && ev.pos > left {
			result = append(result, Span{Start: left, End: ev.pos})
		}
	}
	return result
}

// Index returns the index of the span containing query. It returns -1 when
// query lies entirely in a gap or beyond the last span, and an error wrapping
// ErrPartialSpan when query overlaps a span without being contained in it.
func (s Set) Index(query Span) (int, error) {
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End > query.Start
	})
	if i == len(s.spans) {
		return -1, nil
	}
	sp := s.spans[i]
	if query.End <= sp.Start {
		return -1, nil
	}
	if !sp.Contains(query) {
		return -1, fmt.Errorf("%w: query %s, span %d is %s", ErrPartialSpan, query, i, sp)
	}
	return i, nil
}

// Extract slices text at every span of the set. Text shorter than the set is
// treated as if padded with spaces.
func (s Set) Extract(text string) []string {
	runes := padded(text, s.End())
	out := make([]string, len(s.spans))
	for i, sp := range s.spans {
		out[i] = string(runes[sp.Start:sp.End])
	}
	return out
}

// ExtractColumn returns the text under the column-th span. The second result
// is false when the set has no such column.
func (s Set) ExtractColumn(text string, column int) (string, bool) {
	if column < 0 || column >= len(s.spans) {
		return "", false
	}
	sp := s.spans[column]
	runes := padded(text, sp.End)
	return string(runes[sp.Start:sp.End]), true
}

// padded returns the runes of text, extended with spaces to at least n runes.
func padded(text string, n int) []rune {
	runes := []rune(text)
	if len(runes) >= n {
		return runes
	}
	out := make([]rune, n)
	copy(out, runes)
	for i := len(runes); i < n; i++ {
		out[i] = ' '
	}
	return out
}
