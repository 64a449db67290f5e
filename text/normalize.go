package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts raw converter output into NFC-normalized UTF-8 with
// "\n" line endings. Input that is not valid UTF-8 is decoded as
// Windows-1252.
func Normalize(raw []byte) (string, error) {
	s := string(raw)
	if !utf8.Valid(raw) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		s = string(decoded)
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s), nil
}

// Width returns the number of rune columns in line.
func Width(line string) int {
	return utf8.RuneCountInString(line)
}
