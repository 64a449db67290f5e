package patches

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Spec is the YAML form of the patches for one page.
type Spec struct {
	Timestamp string   `yaml:"timestamp"`
	Page      int      `yaml:"page"`
	Ops       []OpSpec `yaml:"ops"`
}

// OpSpec is the YAML form of one transform.
type OpSpec struct {
	Op     string `yaml:"op"`
	Line   int    `yaml:"line"`
	Old    string `yaml:"old,omitempty"`
	New    string `yaml:"new,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Column int    `yaml:"column,omitempty"`
	Count  int    `yaml:"count,omitempty"`
}

// Transform builds the transform described by s.
func (s OpSpec) Transform() (Transform, error) {
	switch s.Op {
	case "replace_text":
		if s.Old == "" {
			return nil, fmt.Errorf("replace_text needs old text")
		}
		return ReplaceText{Line: s.Line, Old: s.Old, New: s.New}, nil
	case "replace_line":
		return ReplaceLine{Line: s.Line, Text: s.Text}, nil
	case "insert_space":
		return InsertSpaceAt{Line: s.Line, Column: s.Column}, nil
	case "delete_lines":
		return DeleteLines{Line: s.Line, Count: s.Count}, nil
	default:
		return nil, fmt.Errorf("unknown patch op %q", s.Op)
	}
}

// AddSpecs registers every spec in t.
func (t *Table) AddSpecs(specs []Spec) error {
	for i, spec := range specs {
		if spec.Timestamp == "" || spec.Page < 1 {
			return fmt.Errorf("patch %d: timestamp and page are required", i+1)
		}
		key := Key{Timestamp: spec.Timestamp, Page: spec.Page}
		for j, op := range spec.Ops {
			tr, err := op.Transform()
			if err != nil {
				return fmt.Errorf("patch %d (%s) op %d: %w", i+1, key, j+1, err)
			}
			t.Register(key, tr)
		}
	}
	return nil
}

// Load reads a YAML list of page patches.
func Load(r io.Reader) (*Table, error) {
	var specs []Spec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse patches: %w", err)
	}
	table := NewTable()
	if err := table.AddSpecs(specs); err != nil {
		return nil, err
	}
	return table, nil
}
