package patches

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Key identifies one page of one source document.
type Key struct {
	Timestamp string // Document creation timestamp as reported by the converter
	Page      int    // Page number
}

// String returns the key as "timestamp#page".
func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Timestamp, k.Page)
}

// Transform rewrites the body lines of one page.
type Transform interface {
	// Apply returns the rewritten lines. It must not modify its input.
	Apply(lines []string) ([]string, error)

	// Name returns a short description for logs.
	Name() string
}

// Table maps page keys to the transforms applied to them.
type Table struct {
	mu      sync.RWMutex
	patches map[Key][]Transform
}

// NewTable creates an empty patch table.
func NewTable() *Table {
	return &Table{
		patches: make(map[Key][]Transform),
	}
}

// Register appends transforms to the patches for key.
func (t *Table) Register(key Key, transforms ...Transform) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patches[key] = append(t.patches[key], transforms...)
}

// Get returns the transforms registered for key.
func (t *Table) Get(key Key) []Transform {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.patches[key])
}

// Keys returns all registered keys ordered by timestamp and page.
func (t *Table) Keys() []Key {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]Key, 0, len(t.patches))
	for k := range t.patches {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.Page, b.Page)
	})
	return keys
}

// Len returns the number of patched pages.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.patches)
}

// Merge registers every patch of other in t.
func (t *Table) Merge(other *Table) {
	if other == nil || other == t {
		return
	}
	for _, k := range other.Keys() {
		t.Register(k, other.Get(k)...)
	}
}

// Apply runs the transforms registered for key over lines, in registration
// order. It returns the input unchanged, and false, when nothing is
// registered.
func (t *Table) Apply(key Key, lines []string) ([]string, bool, error) {
	transforms := t.Get(key)
	if len(transforms) == 0 {
		return lines, false, nil
	}
	out := lines
	for _, tr := range transforms {
		var err error
		out, err = tr.Apply(out)
		if err != nil {
			return nil, false, fmt.Errorf("patch %s for %s: %w", tr.Name(), key, err)
		}
	}
	return out, true, nil
}

// Global table
var globalTable = NewTable()

// Register adds transforms to the global table.
func Register(key Key, transforms ...Transform) {
	globalTable.Register(key, transforms...)
}

// Global returns the global table.
func Global() *Table {
	return globalTable
}
