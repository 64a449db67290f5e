package layout

import (
	"github.com/tsawler/worksheet/model"
)

// Policy decides what happens when a page disagrees with the consensus.
type Policy int

const (
	// Reject fails the page.
	Reject Policy = iota
	// Ignore keeps the previous consensus and records the anomaly.
	Ignore
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(name string) (Policy, bool) {
	switch name {
	case "", "reject":
		return Reject, true
	case "ignore":
		return Ignore, true
	default:
		return Reject, false
	}
}

// Config holds configuration for column inference.
type Config struct {
	// ProgramExplanationWidth is the width of the explanation column on
	// program pages, measured from the start of the text after the sequence
	// code field.
	// Default: 62
	ProgramExplanationWidth int

	// DepartmentExplanationWidth is the same width on department pages.
	// Default: 46
	DepartmentExplanationWidth int

	// Policy applied to consensus anomalies.
	// Default: Reject
	Policy Policy

	// MaxShift bounds how far any column boundary may move in one merge.
	// Zero means unbounded.
	// Default: 0
	MaxShift int

	// Fillers are applied to every body line before spans are inferred.
	// Default: none
	Fillers []FillerRule

	// Markers are applied to body lines of the matching page kind.
	// Default: none
	Markers []MarkerRule
}

// DefaultConfig returns the layout configuration for standard worksheets.
// It has no filler or marker rules.
func DefaultConfig() Config {
	return Config{
		ProgramExplanationWidth:    62,
		DepartmentExplanationWidth: 46,
		Policy:                     Reject,
		MaxShift:                   0,
	}
}

// ExplanationWidth returns the explanation column width for kind.
func (c Config) ExplanationWidth(kind model.Kind) int {
	if kind == model.DepartmentPage {
		return c.DepartmentExplanationWidth
	}
	return c.ProgramExplanationWidth
}

// clone returns a copy of c that shares no slices with it.
func (c Config) clone() Config {
	out := c
	out.Fillers = append([]FillerRule(nil), c.Fillers...)
	out.Markers = append([]MarkerRule(nil), c.Markers...)
	return out
}
