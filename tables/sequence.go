package tables

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tsawler/worksheet/model"
)

const (
	// CodeWidth is the width of the sequence code field at the start of
	// every body line.
	CodeWidth = 19

	// TextStart is the column where the text after the code field begins.
	TextStart = 21
)

// DefaultBlockID names the block that is open before any id is seen, when no
// captions are given.
const DefaultBlockID = "BASE APPROPRIATIONS"

// ErrSequenceMismatch is returned when the opened sequence ids disagree with
// the blocks that were built, which happens when an id is opened twice.
var ErrSequenceMismatch = errors.New("sequence ids do not match blocks")

// ErrFieldGap is returned when a body line has text in the two columns
// between the sequence code field and the text that follows it.
var ErrFieldGap = errors.New("text between sequence code and explanation")

// SplitLine returns the trimmed sequence code of line and the text that
// follows the code field.
func SplitLine(line string) (code, rest string) {
	runes := []rune(line)
	code = strings.TrimSpace(string(runes[:min(CodeWidth, len(runes))]))
	if len(runes) > TextStart {
		rest = string(runes[TextStart:])
	}
	return code, rest
}

// gapText returns the trimmed text in the columns between the code field and
// TextStart.
func gapText(line string) string {
	runes := []rune(line)
	if len(runes) <= CodeWidth {
		return ""
	}
	return strings.TrimSpace(string(runes[CodeWidth:min(TextStart, len(runes))]))
}

// FindBlocks partitions body lines into sequence blocks. The first caption
// names the block open before any id is seen. Blocks are returned in the
// order they were opened and blocks without lines are dropped. A line with
// text between the code field and TextStart is rejected with ErrFieldGap.
func FindBlocks(lines []string, captions []string) ([]model.Block, error) {
	first := DefaultBlockID
	if len(captions) > 0 {
		first = captions[0]
	}

	opened := []string{first}
	blocks := map[string][]string{first: nil}

	for i, line := range lines {
		if gap := gapText(line); gap != "" {
			return nil, fmt.Errorf("%w: line %d has %q at columns %d-%d", ErrFieldGap, i+1, gap, CodeWidth, TextStart-1)
		}
		id, rest := SplitLine(line)
		if id == "" {
			id = matchCaption(rest, captions)
		}

		if id != "" && id != opened[len(opened)-1] {
			opened = append(opened, id)
			blocks[id] = nil
		}

		current := opened[len(opened)-1]
		blocks[current] = append(blocks[current], rest)
	}

	keys := make([]string, 0, len(blocks))
	for k := range blocks {
		keys = append(keys, k)
	}
	sortedOpened := slices.Clone(opened)
	slices.Sort(sortedOpened)
	slices.Sort(keys)
	if !slices.Equal(sortedOpened, keys) {
		return nil, fmt.Errorf("%w: opened %q, blocks %q", ErrSequenceMismatch, sortedOpened, keys)
	}

	result := make([]model.Block, 0, len(opened))
	for _, id := range opened {
		if len(blocks[id]) == 0 {
			continue
		}
		result = append(result, model.Block{ID: id, Lines: blocks[id]})
	}
	return result, nil
}

// matchCaption returns the first caption that begins the left-trimmed text,
// or "".
func matchCaption(text string, captions []string) string {
	text = strings.TrimLeft(text, " \t")
	for _, c := range captions {
		if strings.HasPrefix(text, c) {
			return c
		}
	}
	return ""
}
