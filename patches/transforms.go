package patches

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrLineRange is returned when a transform addresses a line that does not
// exist.
var ErrLineRange = errors.New("line out of range")

// Lines are numbered from 1 in every transform.

func checkLine(lines []string, line int) error {
	if line < 1 || line > len(lines) {
		return fmt.Errorf("%w: line %d of %d", ErrLineRange, line, len(lines))
	}
	return nil
}

// ReplaceText replaces every occurrence of Old with New on one line, or on
// every line when Line is 0.
type ReplaceText struct {
	Line int
	Old  string
	New  string
}

func (r ReplaceText) Name() string { return "replace_text" }

func (r ReplaceText) Apply(lines []string) ([]string, error) {
	out := slices.Clone(lines)
	if r.Line == 0 {
		for i := range out {
			out[i] = strings.ReplaceAll(out[i], r.Old, r.New)
		}
		return out, nil
	}
	if err := checkLine(lines, r.Line); err != nil {
		return nil, err
	}
	if !strings.Contains(out[r.Line-1], r.Old) {
		return nil, fmt.Errorf("line %d does not contain %q", r.Line, r.Old)
	}
	out[r.Line-1] = strings.ReplaceAll(out[r.Line-1], r.Old, r.New)
	return out, nil
}

// ReplaceLine replaces one line with Text.
type ReplaceLine struct {
	Line int
	Text string
}

func (r ReplaceLine) Name() string { return "replace_line" }

func (r ReplaceLine) Apply(lines []string) ([]string, error) {
	if err := checkLine(lines, r.Line); err != nil {
		return nil, err
	}
	out := slices.Clone(lines)
	out[r.Line-1] = r.Text
	return out, nil
}

// InsertSpaceAt inserts a space at rune Column on one line, or on every line
// longer than Column when Line is 0.
type InsertSpaceAt struct {
	Line   int
	Column int
}

func (r InsertSpaceAt) Name() string { return "insert_space" }

func (r InsertSpaceAt) Apply(lines []string) ([]string, error) {
	if r.Column < 0 {
		return nil, fmt.Errorf("negative column %d", r.Column)
	}
	out := slices.Clone(lines)
	if r.Line == 0 {
		for i := range out {
			out[i] = insertSpace(out[i], r.Column)
		}
		return out, nil
	}
	if err := checkLine(lines, r.Line); err != nil {
		return nil, err
	}
	out[r.Line-1] = insertSpace(out[r.Line-1], r.Column)
	return out, nil
}

func insertSpace(line string, column int) string {
	runes := []rune(line)
	if len(runes) <= column {
		return line
	}
	return string(runes[:column]) + " " + string(runes[column:])
}

// DeleteLines removes Count lines starting at Line.
type DeleteLines struct {
	Line  int
	Count int
}

func (r DeleteLines) Name() string { return "delete_lines" }

func (r DeleteLines) Apply(lines []string) ([]string, error) {
	if err := checkLine(lines, r.Line); err != nil {
		return nil, err
	}
	count := max(r.Count, 1)
	end := r.Line - 1 + count
	if end > len(lines) {
		return nil, fmt.Errorf("%w: delete %d lines from %d of %d", ErrLineRange, count, r.Line, len(lines))
	}
	return slices.Delete(slices.Clone(lines), r.Line-1, end), nil
}

// Func adapts an ordinary function to the Transform interface.
type Func struct {
	Label string
	Fn    func([]string) ([]string, error)
}

func (f Func) Name() string { return f.Label }

func (f Func) Apply(lines []string) ([]string, error) {
	return f.Fn(slices.Clone(lines))
}
