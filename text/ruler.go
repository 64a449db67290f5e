package text

import "strings"

// Ruler returns two lines numbering columns 0 to width-1: the first holds the
// tens digit of each column and the second its units digit.
func Ruler(width int) (tens, units string) {
	var tb, ub strings.Builder
	for i := 0; i < width; i++ {
		tb.WriteByte(byte('0' + (i/10)%10))
		ub.WriteByte(byte('0' + i%10))
	}
	return tb.String(), ub.String()
}

// Annotate returns line preceded by a ruler as wide as the line.
func Annotate(line string) string {
	tens, units := Ruler(Width(line))
	return tens + "\n" + units + "\n" + line
}
