package refdata

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// SpecialCaptions are the captions that open a sequence block when the
// sequence code field is blank. The first caption names the block that is
// open at the top of every page. Order matters: the first caption that
// prefixes a line wins.
var SpecialCaptions = []string{
	"BASE APPROPRIATIONS",
	"TOTAL BUDGET CHANGES",
	"BUDGET TOTALS",
	"DEPARTMENT APPROPRIATIONS",
	"TOTAL DEPARTMENT APPROPRIATIONS",
	"DEPARTMENT BUDGET CHANGES",
	"TOTAL DEPARTMENT BUDGET CHANGES",
	"DEPARTMENT TOTAL BUDGET",
	"TOTAL DEPARTMENT BUDGET",
	"TOTAL APPROPRIATIONS",
	"GRAND TOTAL APPROPRIATIONS",
	"TOTAL CHANGES",
	"GRAND TOTAL CHANGES",
	"GRAND TOTAL BUDGET",
}

// SubHeaderLabels are the six labels under the fiscal year headings.
var SubHeaderLabels = []string{"Perm", "Temp", "Amt", "Perm", "Temp", "Amt"}

var departments = map[string]string{
	"AGR": "Department of Agriculture (DOA)",
	"AGS": "Department of Accounting and General Services (DAGS)",
	"ATG": "Department of the Attorney General (AG)",
	"BED": "Department of Business, Economic Development, and Tourism (DBEDT)",
	"BUF": "Department of Budget and Finance (B&F)",
	"CCA": "Department of Commerce and Consumer Affairs (DCCA)",
	"DEF": "Department of Defense (DOD)",
	"EDN": "Department of Education (DOE)",
	"GOV": "Office of the Governor",
	"HHL": "Department of Hawaiian Home Lands (DHHL)",
	"HMS": "Department of Human Services (DHS)",
	"HRD": "Department of Human Resources Development (DHRD)",
	"HTH": "Department of Health (DOH)",
	"JUD": "Judiciary",
	"LBR": "Department of Labor and Industrial Relations (DLIR)",
	"LNR": "Department of Land and Natural Resources (DLNR)",
	"LTG": "Office of the Lieutenant Governor (LG)",
	"PSD": "Department of Public Safety (DPS)",
	"SUB": "Subsidies",
	"TAX": "Department of Taxation (DOTAX)",
	"TRN": "Department of Transportation (DOT)",
	"UOH": "University of Hawaii (UH)",
	"CCH": "City and County of Honolulu",
	"COH": "County of Hawaii",
	"COK": "County of Kauai",
	"COM": "County of Maui",
}

var fundSources = map[string]string{
	"A": "general funds",
	"B": "special funds",
	"C": "general obligation bond fund",
	"D": "general obligation bond fund with debt service cost to be paid from special funds",
	"E": "revenue bond funds",
	"J": "federal aid interstate funds",
	"K": "federal aid primary funds",
	"L": "federal aid secondary funds",
	"M": "federal aid urban funds",
	"N": "federal funds",
	"P": "other federal funds",
	"R": "private contributions",
	"S": "county funds",
	"T": "trust funds",
	"U": "interdepartmental transfers",
	"W": "revolving funds",
	"X": "other funds",
}

// Tables holds the reference data for one run.
type Tables struct {
	Departments     map[string]string `yaml:"departments"`
	FundSources     map[string]string `yaml:"fund_sources"`
	SpecialCaptions []string          `yaml:"special_captions"`
	SubHeaderLabels []string          `yaml:"sub_header_labels"`
}

// Default returns a copy of the built-in tables.
func Default() *Tables {
	return &Tables{
		Departments:     maps.Clone(departments),
		FundSources:     maps.Clone(fundSources),
		SpecialCaptions: slices.Clone(SpecialCaptions),
		SubHeaderLabels: slices.Clone(SubHeaderLabels),
	}
}

// Department returns the name of the department with the given code.
func (t *Tables) Department(code string) (string, bool) {
	name, ok := t.Departments[code]
	return name, ok
}

// FundSource returns the description of a means of financing code.
func (t *Tables) FundSource(code string) (string, bool) {
	desc, ok := t.FundSources[code]
	return desc, ok
}

// Overlay copies the entries of other into t. Map entries are added or
// replaced; lists replace the existing list when non-empty.
func (t *Tables) Overlay(other *Tables) {
	if other == nil {
		return
	}
	if t.Departments == nil {
		t.Departments = make(map[string]string)
	}
	if t.FundSources == nil {
		t.FundSources = make(map[string]string)
	}
	maps.Copy(t.Departments, other.Departments)
	maps.Copy(t.FundSources, other.FundSources)
	if len(other.SpecialCaptions) > 0 {
		t.SpecialCaptions = slices.Clone(other.SpecialCaptions)
	}
	if len(other.SubHeaderLabels) > 0 {
		t.SubHeaderLabels = slices.Clone(other.SubHeaderLabels)
	}
}

// Validate checks that the tables can drive a parse.
func (t *Tables) Validate() error {
	if len(t.SpecialCaptions) == 0 {
		return fmt.Errorf("no special captions configured")
	}
	if len(t.SubHeaderLabels) != 6 {
		return fmt.Errorf("sub-header needs 6 labels, have %d", len(t.SubHeaderLabels))
	}
	return nil
}

// Parse overlays YAML-encoded tables onto the defaults.
func Parse(data []byte) (*Tables, error) {
	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	t := Default()
	t.Overlay(&overrides)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads a YAML file and overlays it onto the defaults.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	return Parse(data)
}
