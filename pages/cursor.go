package pages

import "github.com/tsawler/worksheet/text"

// cursor walks the lines of a page.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines}
}

// next returns the current line and its 1-indexed number and advances. Past
// the end it returns an empty line.
func (c *cursor) next() (string, int) {
	n := c.pos + 1
	if c.pos >= len(c.lines) {
		c.pos++
		return "", n
	}
	line := c.lines[c.pos]
	c.pos++
	return line, n
}

// back moves the cursor to the previous line.
func (c *cursor) back() {
	if c.pos > 0 {
		c.pos--
	}
}

// skipBlank advances past blank lines.
func (c *cursor) skipBlank() {
	for c.pos < len(c.lines) && text.IsBlank(c.lines[c.pos]) {
		c.pos++
	}
}

// rest returns the lines from the cursor to the end.
func (c *cursor) rest() []string {
	if c.pos >= len(c.lines) {
		return nil
	}
	return c.lines[c.pos:]
}
