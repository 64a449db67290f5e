package patches

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var testKey = Key{Timestamp: "2015-01-05 16:33:12", Page: 12}

func TestTable(t *testing.T) {
	table := NewTable()
	if table.Len() != 0 {
		t.Fatalf("Len() = %d", table.Len())
	}

	table.Register(testKey, ReplaceLine{Line: 1, Text: "x"})
	table.Register(testKey, DeleteLines{Line: 2})
	table.Register(Key{Timestamp: "2014-12-01 08:00:00", Page: 3}, ReplaceLine{Line: 1, Text: "y"})

	if got := len(table.Get(testKey)); got != 2 {
		t.Errorf("Get() returned %d transforms, want 2", got)
	}
	keys := table.Keys()
	if len(keys) != 2 || keys[0].Timestamp != "2014-12-01 08:00:00" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestTableApply(t *testing.T) {
	table := NewTable()
	table.Register(testKey,
		ReplaceText{Line: 2, Old: "1,00O", New: "1,000"},
		DeleteLines{Line: 3, Count: 1},
	)

	in := []string{"a", "amt 1,00O", "junk", "b"}
	got, applied, err := table.Apply(testKey, in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if !applied {
		t.Error("Apply() reported nothing applied")
	}
	want := []string{"a", "amt 1,000", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
	if in[1] != "amt 1,00O" {
		t.Error("Apply() modified its input")
	}

	got, applied, err = table.Apply(Key{Timestamp: "other", Page: 1}, in)
	if err != nil || applied || !reflect.DeepEqual(got, in) {
		t.Errorf("Apply(unknown key) = %q, %v, %v", got, applied, err)
	}
}

func TestTableApply_Error(t *testing.T) {
	table := NewTable()
	table.Register(testKey, ReplaceLine{Line: 9, Text: "x"})

	_, _, err := table.Apply(testKey, []string{"only"})
	if !errors.Is(err, ErrLineRange) {
		t.Errorf("Apply() error = %v, want ErrLineRange", err)
	}
	if err != nil && !strings.Contains(err.Error(), "replace_line") {
		t.Errorf("error %q should name the transform", err)
	}
}

func TestTransforms(t *testing.T) {
	in := []string{"abcdef", "ab", "xyz abc"}

	tests := []struct {
		name string
		tr   Transform
		want []string
	}{
		{"replace text on line", ReplaceText{Line: 3, Old: "abc", New: "ABC"}, []string{"abcdef", "ab", "xyz ABC"}},
		{"replace text everywhere", ReplaceText{Old: "ab", New: "AB"}, []string{"ABcdef", "AB", "xyz ABc"}},
		{"replace line", ReplaceLine{Line: 2, Text: "new"}, []string{"abcdef", "new", "xyz abc"}},
		{"insert space on line", InsertSpaceAt{Line: 1, Column: 3}, []string{"abc def", "ab", "xyz abc"}},
		{"insert space everywhere", InsertSpaceAt{Column: 3}, []string{"abc def", "ab", "xyz  abc"}},
		{"delete one", DeleteLines{Line: 1}, []string{"ab", "xyz abc"}},
		{"delete two", DeleteLines{Line: 2, Count: 2}, []string{"abcdef"}},
		{"func", Func{Label: "upper", Fn: func(l []string) ([]string, error) {
			for i := range l {
				l[i] = strings.ToUpper(l[i])
			}
			return l, nil
		}}, []string{"ABCDEF", "AB", "XYZ ABC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tr.Apply(in)
			if err != nil {
				t.Fatalf("Apply() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if in[0] != "abcdef" || len(in) != 3 {
				t.Fatal("transform modified its input")
			}
		})
	}
}

func TestTransforms_Errors(t *testing.T) {
	in := []string{"one", "two"}

	tests := []struct {
		name string
		tr   Transform
	}{
		{"replace text missing", ReplaceText{Line: 1, Old: "zzz", New: "y"}},
		{"replace line range", ReplaceLine{Line: 3}},
		{"insert negative column", InsertSpaceAt{Line: 1, Column: -1}},
		{"delete past end", DeleteLines{Line: 2, Count: 2}},
		{"delete zero line", DeleteLines{Line: 0}},
	}

	for _, tt := range tests {
		if _, err := tt.tr.Apply(in); err == nil {
			t.Errorf("%s: Apply() should fail", tt.name)
		}
	}
}

func TestLoad(t *testing.T) {
	data := `
- timestamp: "2015-01-05 16:33:12"
  page: 12
  ops:
    - op: insert_space
      column: 81
    - op: replace_text
      line: 2
      old: "1,00O"
      new: "1,000"
- timestamp: "2015-01-05 16:33:12"
  page: 14
  ops:
    - op: delete_lines
      line: 5
      count: 2
`
	table, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	got := table.Get(testKey)
	if len(got) != 2 {
		t.Fatalf("Get() = %v", got)
	}
	if tr, ok := got[0].(InsertSpaceAt); !ok || tr.Column != 81 || tr.Line != 0 {
		t.Errorf("first transform = %#v", got[0])
	}
	if tr, ok := got[1].(ReplaceText); !ok || tr.Old != "1,00O" {
		t.Errorf("second transform = %#v", got[1])
	}
}

func TestLoad_Empty(t *testing.T) {
	table, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load(empty) error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d", table.Len())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown op", "- {timestamp: t, page: 1, ops: [{op: explode}]}"},
		{"missing page", "- {timestamp: t, ops: [{op: replace_line, line: 1}]}"},
		{"replace without old", "- {timestamp: t, page: 1, ops: [{op: replace_text, line: 1}]}"},
		{"malformed", "- [unclosed"},
	}

	for _, tt := range tests {
		if _, err := Load(strings.NewReader(tt.data)); err == nil {
			t.Errorf("%s: Load() should fail", tt.name)
		}
	}
}

func TestGlobal(t *testing.T) {
	key := Key{Timestamp: "global-test", Page: 1}
	Register(key, ReplaceLine{Line: 1, Text: "g"})
	if len(Global().Get(key)) != 1 {
		t.Error("Register() did not reach the global table")
	}
}

func TestMerge(t *testing.T) {
	a := NewTable()
	b := NewTable()
	b.Register(testKey, ReplaceLine{Line: 1, Text: "b"})

	a.Merge(b)
	a.Merge(nil)
	a.Merge(a)
	if len(a.Get(testKey)) != 1 {
		t.Errorf("Merge() copied %d transforms, want 1", len(a.Get(testKey)))
	}
}
