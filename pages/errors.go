package pages

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure is matched by every StructureError.
	ErrStructure = errors.New("unexpected page structure")

	// ErrLookup is matched by every LookupError.
	ErrLookup = errors.New("unknown reference code")
)

// StructureError reports a header element that is missing or malformed.
type StructureError struct {
	Line int    // 1-indexed line within the page
	Want string // What the parser expected
	Got  string // The offending line
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: expected %s, found %q", e.Line, e.Want, e.Got)
}

// Unwrap returns ErrStructure.
func (e *StructureError) Unwrap() error {
	return ErrStructure
}

// LookupError reports a code missing from a reference table.
type LookupError struct {
	Table string
	Code  string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%s code %q not found", e.Table, e.Code)
}

// Unwrap returns ErrLookup.
func (e *LookupError) Unwrap() error {
	return ErrLookup
}
