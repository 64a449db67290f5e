// Package config loads run settings from a YAML file: reference data,
// layout rules, text patches, the line-break marker and the converter
// command.
//
// A minimal file:
//
//	line_break: "\\n"
//	layout:
//	  policy: ignore
//	  fillers:
//	    - {char: "-", length: 20, keep: 19}
//	reference:
//	  departments:
//	    XYZ: Example Department
//	patches:
//	  - timestamp: "2015-01-05 16:40:00"
//	    page: 12
//	    ops:
//	      - {op: replace_text, line: 3, old: "1O0", new: "100"}
//
// Relative paths inside the file are resolved against its directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/patches"
	"github.com/tsawler/worksheet/reader"
	"github.com/tsawler/worksheet/refdata"
	"github.com/tsawler/worksheet/tables"
)

// File is the YAML form of a configuration file.
type File struct {
	Converter     Converter       `yaml:"converter"`
	LineBreak     *string         `yaml:"line_break"`
	Layout        Layout          `yaml:"layout"`
	Reference     *refdata.Tables `yaml:"reference"`
	ReferenceFile string          `yaml:"reference_file"`
	Patches       []patches.Spec  `yaml:"patches"`
	PatchFiles    []string        `yaml:"patch_files"`
}

// Converter configures the PDF converter command.
type Converter struct {
	Binary string   `yaml:"binary"`
	Args   []string `yaml:"args"`
}

// Layout configures column inference.
type Layout struct {
	ProgramExplanationWidth    int      `yaml:"program_explanation_width"`
	DepartmentExplanationWidth int      `yaml:"department_explanation_width"`
	Policy                     string   `yaml:"policy"`
	MaxShift                   int      `yaml:"max_shift"`
	Fillers                    []Filler `yaml:"fillers"`
	Markers                    []Marker `yaml:"markers"`
}

// Filler is the YAML form of layout.FillerRule.
type Filler struct {
	Char   string `yaml:"char"`
	Length int    `yaml:"length"`
	Keep   int    `yaml:"keep"`
}

// Marker is the YAML form of layout.MarkerRule.
type Marker struct {
	Kind   string `yaml:"kind"`
	Column int    `yaml:"column"`
}

// Settings is a resolved configuration.
type Settings struct {
	Layout    layout.Config
	Tables    *refdata.Tables
	Patches   *patches.Table
	LineBreak string
	Converter reader.PDFToText
}

// Default returns the built-in settings. Patches registered globally are
// included.
func Default() *Settings {
	p := patches.NewTable()
	p.Merge(patches.Global())
	return &Settings{
		Layout:    layout.DefaultConfig(),
		Tables:    refdata.Default(),
		Patches:   p,
		LineBreak: tables.DefaultOptions().LineBreak,
	}
}

// Load reads the configuration file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a configuration file. dir resolves relative paths.
func Parse(data []byte, dir string) (*Settings, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return f.Resolve(dir)
}

// Resolve applies f on top of the defaults.
func (f *File) Resolve(dir string) (*Settings, error) {
	s := Default()

	if f.LineBreak != nil {
		s.LineBreak = *f.LineBreak
	}
	s.Converter = reader.PDFToText{Binary: f.Converter.Binary, Args: f.Converter.Args}

	if err := f.Layout.apply(&s.Layout); err != nil {
		return nil, err
	}

	if f.ReferenceFile != "" {
		t, err := refdata.Load(resolvePath(dir, f.ReferenceFile))
		if err != nil {
			return nil, err
		}
		s.Tables = t
	}
	if f.Reference != nil {
		s.Tables.Overlay(f.Reference)
		if err := s.Tables.Validate(); err != nil {
			return nil, err
		}
	}

	for _, name := range f.PatchFiles {
		t, err := loadPatches(resolvePath(dir, name))
		if err != nil {
			return nil, err
		}
		s.Patches.Merge(t)
	}
	if err := s.Patches.AddSpecs(f.Patches); err != nil {
		return nil, err
	}
	return s, nil
}

func (l Layout) apply(cfg *layout.Config) error {
	if l.ProgramExplanationWidth < 0 || l.DepartmentExplanationWidth < 0 || l.MaxShift < 0 {
		return fmt.Errorf("layout widths and max_shift must not be negative")
	}
	if l.ProgramExplanationWidth > 0 {
		cfg.ProgramExplanationWidth = l.ProgramExplanationWidth
	}
	if l.DepartmentExplanationWidth > 0 {
		cfg.DepartmentExplanationWidth = l.DepartmentExplanationWidth
	}
	cfg.MaxShift = l.MaxShift

	policy, ok := layout.ParsePolicy(l.Policy)
	if !ok {
		return fmt.Errorf("unknown policy %q", l.Policy)
	}
	cfg.Policy = policy

	for i, f := range l.Fillers {
		if utf8.RuneCountInString(f.Char) != 1 {
			return fmt.Errorf("filler %d: char must be a single character, got %q", i+1, f.Char)
		}
		if f.Length <= 0 || f.Keep < 0 || f.Keep >= f.Length {
			return fmt.Errorf("filler %d: need 0 <= keep < length", i+1)
		}
		r, _ := utf8.DecodeRuneInString(f.Char)
		cfg.Fillers = append(cfg.Fillers, layout.FillerRule{Char: r, Length: f.Length, Keep: f.Keep})
	}

	for i, m := range l.Markers {
		kind, ok := ParseKind(m.Kind)
		if !ok {
			return fmt.Errorf("marker %d: unknown page kind %q", i+1, m.Kind)
		}
		if m.Column < 0 {
			return fmt.Errorf("marker %d: column must not be negative", i+1)
		}
		cfg.Markers = append(cfg.Markers, layout.MarkerRule{Kind: kind, Column: m.Column})
	}
	return nil
}

// ParseKind converts a page kind name into a model.Kind.
func ParseKind(name string) (model.Kind, bool) {
	switch name {
	case model.ProgramPage.String():
		return model.ProgramPage, true
	case model.DepartmentPage.String():
		return model.DepartmentPage, true
	default:
		return 0, false
	}
}

func loadPatches(path string) (*patches.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patches: %w", err)
	}
	defer f.Close()

	t, err := patches.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
